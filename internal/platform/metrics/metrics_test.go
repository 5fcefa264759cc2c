package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, m *Metrics, update func()) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler(update).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape: expected 200, got %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMetrics_ObserveComposition(t *testing.T) {
	m := New()
	m.ObserveComposition([]string{"split_screen", "full_screen", "split_screen"})

	body := scrape(t, m, nil)
	for _, want := range []string{
		"compositor_compositions_total 1",
		`compositor_groups_total{layout="split_screen"} 2`,
		`compositor_groups_total{layout="full_screen"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in:\n%s", want, body)
		}
	}
}

func TestMetrics_Handler_updates_gauges(t *testing.T) {
	m := New()
	body := scrape(t, m, func() { m.SetOpenSessions(3) })
	if !strings.Contains(body, "compositor_open_sessions 3") {
		t.Errorf("expected open sessions gauge 3:\n%s", body)
	}
}

func TestRequestMiddleware(t *testing.T) {
	m := New()
	h := RequestMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/ok", "/bad", "/ok"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, m, nil)
	if !strings.Contains(body, "compositor_requests_total 3") {
		t.Errorf("expected 3 requests:\n%s", body)
	}
	if !strings.Contains(body, "compositor_errors_total 1") {
		t.Errorf("expected 1 error:\n%s", body)
	}
}

func TestMetrics_session_lifecycle_counters(t *testing.T) {
	m := New()
	m.IncSessionsClosed()
	m.IncSessionsDeleted()
	m.IncSessionsDeleted()

	body := scrape(t, m, nil)
	for _, want := range []string{
		"compositor_sessions_closed_total 1",
		"compositor_sessions_deleted_total 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in:\n%s", want, body)
		}
	}
}
