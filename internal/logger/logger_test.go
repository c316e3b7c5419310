package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugfRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.SetFlags(0)

	l.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("Debugf wrote %q while not verbose", buf.String())
	}

	l.SetVerbose(true)
	l.Debugf("shown %d", 2)
	if got := strings.TrimSpace(buf.String()); got != "shown 2" {
		t.Errorf("got %q, want %q", got, "shown 2")
	}
}
