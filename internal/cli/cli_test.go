package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"call-compositor/internal/composition"
	"call-compositor/internal/platform/config"
)

const twoPartyJob = `version: 1
output: call.mp4
artifacts:
  - file: alice.webm
    start: 0
    duration: 2s
  - file: bob's camera.webm
    start: 1s
    duration: 1s
`

func writeJob(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	deps := &Dependencies{
		Settings: config.Settings{LogLevel: "info", CanvasWidth: 1280, CanvasHeight: 720},
		Out:      &out,
		Err:      &errBuf,
	}
	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestGraphCmd(t *testing.T) {
	path := writeJob(t, twoPartyJob)

	stdout, _, err := run(t, "graph", path)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), ";\n")
	if lines[0] != "color=color=black:size=1280x720:duration=2 [canvas]" {
		t.Errorf("first node = %q", lines[0])
	}
	if last := lines[len(lines)-1]; last != "[overlay-1-0][scale-1-1] overlay=eof_action=pass:x=640 [video]" {
		t.Errorf("last node = %q", last)
	}
}

func TestGraphCmd_flags_override_size(t *testing.T) {
	path := writeJob(t, twoPartyJob)

	stdout, stderr, err := run(t, "graph", "--width", "640", "--height", "360", "-v", path)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	if !strings.HasPrefix(stdout, "color=color=black:size=640x360:") {
		t.Errorf("expected 640x360 canvas, got %q", stdout)
	}
	if !strings.Contains(stderr, "job composed") {
		t.Errorf("verbose should log to stderr, got %q", stderr)
	}
}

func TestArgsCmd(t *testing.T) {
	path := writeJob(t, twoPartyJob)

	stdout, _, err := run(t, "args", path, "-o", "final.mp4")
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	if !strings.HasPrefix(stdout, "ffmpeg -y -i alice.webm -i 'bob'\\''s camera.webm' -filter_complex '") {
		t.Errorf("unexpected command prefix: %q", stdout)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), "-map '[video]' final.mp4") {
		t.Errorf("unexpected command suffix: %q", stdout)
	}
}

func TestArgsCmd_output_from_job(t *testing.T) {
	path := writeJob(t, twoPartyJob)

	stdout, _, err := run(t, "args", path)
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), " call.mp4") {
		t.Errorf("expected job output path, got %q", stdout)
	}
}

func TestCmd_errors(t *testing.T) {
	noOutput := writeJob(t, "version: 1\nartifacts:\n  - file: a.webm\n    duration: 1s\n")
	empty := writeJob(t, "version: 1\nartifacts: []\n")
	threeScreens := writeJob(t, `version: 1
artifacts:
  - {file: a, duration: 1s, screen: true}
  - {file: b, duration: 1s, screen: true}
  - {file: c, duration: 1s, screen: true}
`)

	if _, _, err := run(t, "args", noOutput); err == nil || !strings.Contains(err.Error(), "no output file") {
		t.Errorf("expected missing output error, got %v", err)
	}
	if _, _, err := run(t, "graph", empty); err == nil || !strings.Contains(err.Error(), "no artifacts") {
		t.Errorf("expected empty job error, got %v", err)
	}
	if _, _, err := run(t, "graph", threeScreens); !errors.Is(err, composition.ErrUnsupportedLayout) {
		t.Errorf("expected ErrUnsupportedLayout, got %v", err)
	}
	if _, _, err := run(t, "graph"); err == nil {
		t.Error("expected error without job argument")
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"out.mp4", "out.mp4"},
		{"[video]", "'[video]'"},
		{"", "''"},
		{"a b", "'a b'"},
		{"it's", `'it'\''s'`},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
