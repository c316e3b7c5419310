package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

func collect(t *testing.T, out <-chan Envelope) []Message {
	t.Helper()
	var msgs []Message
	timeout := time.After(30 * time.Second)
	for {
		select {
		case env := <-out:
			msgs = append(msgs, env.Msg)
			switch env.Msg.(type) {
			case Success, Error:
				return msgs
			}
		case <-timeout:
			t.Fatalf("worker did not finish, got %d messages", len(msgs))
		}
	}
}

func TestRunFindsMatch(t *testing.T) {
	tests := []struct {
		network keys.Network
		pattern string
		mt      pattern.MatchType
	}{
		{keys.Solana, "a", pattern.Contains},
		{keys.Tron, "A", pattern.Suffix},
		{keys.Bitcoin, "b", pattern.Contains},
	}

	for _, tt := range tests {
		t.Run(tt.network.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.JobID = "job-1"
			cfg.Pattern = tt.pattern
			cfg.MatchType = tt.mt
			cfg.Network = tt.network
			cfg.ProgressInterval = 10

			out := make(chan Envelope, 16)
			Spawn(context.Background(), cfg, out)

			msgs := collect(t, out)
			success, ok := msgs[len(msgs)-1].(Success)
			if !ok {
				t.Fatalf("last message = %#v, want Success", msgs[len(msgs)-1])
			}

			res := success.Result
			m := pattern.NewMatcher(tt.pattern, tt.mt, tt.network.LeadingSymbols())
			if !m.Matches(res.Address) {
				t.Errorf("address %s does not match %s %q", res.Address, tt.mt, tt.pattern)
			}
			if res.Attempts == 0 {
				t.Error("attempts should be counted")
			}

			// The mnemonic alone must reproduce the address.
			kp, err := keys.Recover(tt.network, res.Mnemonic)
			if err != nil {
				t.Fatalf("Recover failed: %v", err)
			}
			if kp.Address != res.Address || kp.PrivateKey != res.PrivateKey {
				t.Errorf("recovered %s, worker reported %s", kp.Address, res.Address)
			}
		})
	}
}

func TestRunExhausts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobID = "job-2"
	cfg.Pattern = "zzzzzz"
	cfg.MatchType = pattern.Prefix
	cfg.ProgressInterval = 1
	cfg.MaxAttempts = 3

	out := make(chan Envelope, 16)
	go Run(context.Background(), cfg, out)

	msgs := collect(t, out)
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 3 progress + 1 error: %#v", len(msgs), msgs)
	}
	for i, msg := range msgs[:3] {
		p, ok := msg.(Progress)
		if !ok || p.Attempts != uint64(i+1) {
			t.Errorf("message %d = %#v, want Progress{%d}", i, msg, i+1)
		}
	}
	e, ok := msgs[3].(Error)
	if !ok || !errors.Is(e.Err, ErrExhausted) {
		t.Fatalf("last message = %#v, want exhausted Error", msgs[3])
	}
	if e.Reason != "max attempts exhausted" {
		t.Errorf("reason = %q", e.Reason)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.JobID = "job-3"
	cfg.Pattern = "zzzzzz"
	cfg.MatchType = pattern.Prefix

	out := make(chan Envelope, 1)
	done := make(chan struct{})
	go func() {
		Run(ctx, cfg, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker ignored cancellation")
	}

	env := <-out
	if env.JobID != "job-3" {
		t.Errorf("JobID = %q", env.JobID)
	}
	e, ok := env.Msg.(Error)
	if !ok || !errors.Is(e.Err, context.Canceled) {
		t.Errorf("final message = %#v, want cancelled Error", env.Msg)
	}
}

func TestRunReportsBadNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = "A"
	cfg.MatchType = pattern.Prefix
	cfg.Network = keys.Network(42)

	out := make(chan Envelope, 1)
	Run(context.Background(), cfg, out)

	e, ok := (<-out).Msg.(Error)
	if !ok || !errors.Is(e.Err, keys.ErrUnknownNetwork) {
		t.Errorf("got %#v, want unknown network Error", e)
	}
}

func TestRunThreadsShareOneTerminal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobID = "job-4"
	cfg.Pattern = "zzzzzz"
	cfg.MatchType = pattern.Prefix
	cfg.ProgressInterval = 5
	cfg.MaxAttempts = 40
	cfg.Threads = 4

	out := make(chan Envelope, 64)
	done := make(chan struct{})
	go func() {
		Run(context.Background(), cfg, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("threaded worker did not finish")
	}
	close(out)

	var progress, terminal int
	for env := range out {
		switch msg := env.Msg.(type) {
		case Progress:
			progress++
			if msg.Attempts > cfg.MaxAttempts {
				t.Errorf("progress past ceiling: %d", msg.Attempts)
			}
		case Error:
			terminal++
			if !errors.Is(msg.Err, ErrExhausted) {
				t.Errorf("terminal = %#v, want exhausted", msg)
			}
		default:
			terminal++
			t.Errorf("unexpected %#v", msg)
		}
	}
	if terminal != 1 {
		t.Errorf("got %d terminal messages, want 1", terminal)
	}
	if progress != 8 {
		t.Errorf("got %d progress messages, want 8", progress)
	}
}

func TestRunThreadsFindMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobID = "job-5"
	cfg.Pattern = "a"
	cfg.MatchType = pattern.Contains
	cfg.Threads = 4

	out := make(chan Envelope, 16)
	Spawn(context.Background(), cfg, out)

	msgs := collect(t, out)
	if _, ok := msgs[len(msgs)-1].(Success); !ok {
		t.Fatalf("last message = %#v, want Success", msgs[len(msgs)-1])
	}
}
