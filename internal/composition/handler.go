package composition

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"call-compositor/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const filterGraphContentType = "text/plain; charset=utf-8"

// Handler exposes compositor HTTP endpoints using go-chi.
type Handler struct {
	svc     *Service
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler that uses the given Service, Logger, and optional Metrics.
// Metrics may be nil to disable metric recording (e.g. in tests).
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

// Routes mounts the session endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/sessions/{session_id}", func(r chi.Router) {
		r.Post("/artifacts", h.RegisterArtifact)
		r.Post("/close", h.CloseSession)
		r.Delete("/", h.DeleteSession)
		r.Get("/filtergraph", h.GetFilterGraph)
		r.Get("/plan", h.GetPlan)
	})
}

// RegisterArtifact handles POST /sessions/{session_id}/artifacts.
// Body: { "id": 0, "start": 180000, "duration": 300000, "screen": false }.
func (h *Handler) RegisterArtifact(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var a Artifact
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		h.log.Debug("invalid artifact body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	added, err := h.svc.RegisterArtifact(sessionID, a)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidArtifact):
			h.log.Debug("artifact rejected",
				slog.String("session_id", string(sessionID)),
				slog.Int("artifact_id", int(a.ID)),
				slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, ErrSessionClosed):
			h.log.Info("artifact rejected session closed",
				slog.String("session_id", string(sessionID)),
				slog.Int("artifact_id", int(a.ID)))
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, ErrArtifactConflict):
			h.log.Warn("artifact rejected conflicting payload",
				slog.String("session_id", string(sessionID)),
				slog.Int("artifact_id", int(a.ID)),
				slog.String("error", err.Error()))
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.Error("register artifact failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	if !added {
		w.WriteHeader(http.StatusOK)
		return
	}

	h.log.Debug("artifact registered",
		slog.String("session_id", string(sessionID)),
		slog.Int("artifact_id", int(a.ID)),
		slog.Bool("screen", a.Screen))
	w.WriteHeader(http.StatusCreated)
	if h.metrics != nil {
		h.metrics.IncArtifactsRegistered()
	}
}

// CloseSession handles POST /sessions/{session_id}/close.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	closed, err := h.svc.CloseSession(sessionID)
	if err != nil {
		h.log.Error("close session failed", slog.String("session_id", string(sessionID)), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if !closed {
		return
	}
	h.log.Info("session closed", slog.String("session_id", string(sessionID)))
	if h.metrics != nil {
		h.metrics.IncSessionsClosed()
	}
}

// DeleteSession handles DELETE /sessions/{session_id} and evicts the session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.svc.DeleteSession(sessionID) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.log.Info("session deleted", slog.String("session_id", string(sessionID)))
	w.WriteHeader(http.StatusNoContent)
	if h.metrics != nil {
		h.metrics.IncSessionsDeleted()
	}
}

// GetFilterGraph handles GET /sessions/{session_id}/filtergraph and writes the
// filter_complex text.
func (h *Handler) GetFilterGraph(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.compose(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", filterGraphContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(plan.String()))
}

// planResponse is the JSON shape of GET /sessions/{session_id}/plan.
type planResponse struct {
	*Plan
	Graph string `json:"graph"`
}

// GetPlan handles GET /sessions/{session_id}/plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.compose(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(planResponse{Plan: plan, Graph: plan.String()}); err != nil {
		h.log.Error("encode plan failed", slog.String("error", err.Error()))
	}
}

// compose builds the session's plan, writing the error status itself when it
// fails.
func (h *Handler) compose(w http.ResponseWriter, r *http.Request) (*Plan, bool) {
	sessionID := SessionID(chi.URLParam(r, "session_id"))
	if sessionID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	plan, err := h.svc.Compose(sessionID)
	if err != nil {
		status := statusFor(err)
		attrs := []any{slog.String("session_id", string(sessionID)), slog.String("error", err.Error())}
		if status >= http.StatusInternalServerError {
			h.log.Error("compose failed", attrs...)
		} else {
			h.log.Info("compose rejected", attrs...)
		}
		w.WriteHeader(status)
		return nil, false
	}

	layouts := make([]string, len(plan.Groups))
	for i, g := range plan.Groups {
		layouts[i] = g.Layout.String()
	}
	h.log.Debug("session composed",
		slog.String("session_id", string(sessionID)),
		slog.String("plan_id", plan.ID),
		slog.Int("groups", len(plan.Groups)),
		slog.Int64("duration_ms", plan.Duration()))
	if h.metrics != nil {
		h.metrics.ObserveComposition(layouts)
	}
	return plan, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedLayout):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidArtifact), errors.Is(err, ErrInvalidBase):
		return http.StatusBadRequest
	case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrArtifactConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
