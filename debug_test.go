package spotlight

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_LogsTransitions(t *testing.T) {
	s := newTestStage(t, tourConfig())
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		s.PointerMove(200, 150)
		s.PointerMove(0, 0)
		s.Click(500, 300)
	})

	for _, want := range []string{
		"[spotlight] activate region 0 (left)",
		"[spotlight] deactivate region 0 (left)",
		"[spotlight] select region 1 (right)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in stderr, got: %q", want, output)
		}
	}
}

func TestDebugMode_Off(t *testing.T) {
	s := newTestStage(t, tourConfig())
	output := captureStderr(t, func() {
		s.PointerMove(200, 150)
	})
	if output != "" {
		t.Errorf("expected no output with debug off, got: %q", output)
	}
}

func TestDebugLogStats(t *testing.T) {
	s := newTestStage(t, tourConfig())
	s.debug = true
	output := captureStderr(t, func() {
		s.debugLog(debugStats{phase: PhaseTracking, alpha: 0.7})
	})
	if !strings.Contains(output, "phase: tracking | overlay: 0.700") {
		t.Errorf("unexpected stats output: %q", output)
	}
	if !strings.Contains(output, "[spotlight] tick:") {
		t.Errorf("missing timing line: %q", output)
	}
}
