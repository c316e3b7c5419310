package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	logpkg "github.com/Amr-9/vanityjobs/internal/logger"
	"github.com/Amr-9/vanityjobs/pkg/jobs"
)

func TestHandleLine(t *testing.T) {
	logger = logpkg.Discard()
	m := jobs.NewManager(jobs.DefaultConfig(), jobs.WithLogger(logpkg.Discard()))
	defer m.Shutdown(time.Second)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	steps := []struct {
		line     string
		want     string
		wantQuit bool
	}{
		{"start alice zzzzzz suffix", "started for alice", false},
		{"status alice", `running suffix "zzzzzz" on Solana`, false},
		{"start alice ABC", "requester already has an active job", false},
		{"start bob 0OIl", "outside the base58 alphabet", false},
		{"active", "1 active job(s)", false},
		{"cancel alice", "", false},
		{"status alice", "alice has no active job", false},
		{"cancel alice", "alice has no active job", false},
		{"bogus", "unknown command", false},
		{"", "", false},
		{"quit", "", true},
	}

	for _, s := range steps {
		var out bytes.Buffer
		quit := handleLine(cmd, m, &out, s.line)
		if quit != s.wantQuit {
			t.Errorf("%q: quit = %v, want %v", s.line, quit, s.wantQuit)
		}
		if s.want == "" {
			if out.Len() != 0 {
				t.Errorf("%q: unexpected output %q", s.line, out.String())
			}
			continue
		}
		if !strings.Contains(out.String(), s.want) {
			t.Errorf("%q: output %q, want it to contain %q", s.line, out.String(), s.want)
		}
	}
}
