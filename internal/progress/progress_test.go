package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReporterRendered(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, 2)
	r.Rendered("out/a.mid", "key C minor, 85 bpm")
	r.Rendered("out/b.mid", "key F minor, 80 bpm")
	r.Done()

	out := buf.String()
	if !strings.Contains(out, "[1/2] out/a.mid") {
		t.Errorf("missing first render line:\n%s", out)
	}
	if !strings.Contains(out, "[2/2] out/b.mid") {
		t.Errorf("missing second render line:\n%s", out)
	}
	if !strings.Contains(out, "Done! 2 tracks written") {
		t.Errorf("missing completion line:\n%s", out)
	}
}

func TestReporterFailed(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, 2)
	r.Rendered("out/a.mid", "key C minor, 85 bpm")
	r.Failed("jazzhop", errors.New("boom"))
	r.Done()

	out := buf.String()
	if !strings.Contains(out, "[2/2] jazzhop failed: boom") {
		t.Errorf("missing failure line:\n%s", out)
	}
	if !strings.Contains(out, "Finished: 1 written, 1 failed") {
		t.Errorf("missing summary line:\n%s", out)
	}
}
