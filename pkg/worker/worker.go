// Package worker runs the brute-force search for a single vanity job.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

const (
	DefaultProgressInterval = 1000
	DefaultYieldInterval    = 10000
	DefaultMaxAttempts      = 100_000_000
)

// Config describes one search.
type Config struct {
	JobID     string
	Pattern   string
	MatchType pattern.MatchType
	Network   keys.Network

	// ProgressInterval is how many attempts pass between Progress messages.
	ProgressInterval uint64

	// YieldInterval is how many attempts pass between scheduler yields.
	YieldInterval uint64

	// MaxAttempts is the safety ceiling after which the worker gives up.
	MaxAttempts uint64

	// Threads is the number of goroutines sharing the search. Zero means one.
	Threads int
}

// DefaultConfig returns the standard intervals and ceiling.
func DefaultConfig() Config {
	return Config{
		ProgressInterval: DefaultProgressInterval,
		YieldInterval:    DefaultYieldInterval,
		MaxAttempts:      DefaultMaxAttempts,
		Threads:          1,
	}
}

func (c Config) withDefaults() Config {
	if c.ProgressInterval == 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	if c.YieldInterval == 0 {
		c.YieldInterval = DefaultYieldInterval
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Threads <= 0 {
		c.Threads = 1
	}
	return c
}

// Spawn starts Run on its own goroutine.
func Spawn(ctx context.Context, cfg Config, out chan<- Envelope) {
	go Run(ctx, cfg, out)
}

// Run searches until it sends exactly one Success or Error on out, or until
// ctx is cancelled. Faults are reported as Error messages, never panics.
func Run(ctx context.Context, cfg Config, out chan<- Envelope) {
	cfg = cfg.withDefaults()
	s := &search{
		cfg:  cfg,
		ctx:  ctx,
		out:  out,
		done: make(chan struct{}),
	}

	deriver, err := keys.NewDeriver(cfg.Network)
	if err != nil {
		s.terminate(Error{Reason: err.Error(), Err: err})
		return
	}
	s.deriver = deriver
	s.matcher = pattern.NewMatcher(cfg.Pattern, cfg.MatchType, cfg.Network.LeadingSymbols())
	s.start = time.Now()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop()
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		s.stopped()
		return
	}
	// Every goroutine ran out of attempts; no-op if one already matched.
	s.terminate(Error{Reason: ErrExhausted.Error(), Err: ErrExhausted})
}

// search is the state shared by the goroutines of one Run.
type search struct {
	cfg     Config
	ctx     context.Context
	out     chan<- Envelope
	deriver keys.Deriver
	matcher *pattern.Matcher
	start   time.Time

	attempts uint64 // atomic

	done      chan struct{} // closed once a terminal message is chosen
	closeOnce sync.Once
}

func (s *search) loop() {
	defer func() {
		if r := recover(); r != nil {
			s.terminate(Error{Reason: fmt.Sprintf("worker panic: %v", r), Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	cfg := s.cfg
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.done:
			return
		default:
		}

		n := atomic.AddUint64(&s.attempts, 1)
		if n > cfg.MaxAttempts {
			return
		}

		mnemonic, seed, err := keys.NewSeed()
		if err != nil {
			s.terminate(Error{Reason: "entropy source failed", Err: err})
			return
		}
		kp, err := s.deriver.Derive(seed)
		if err != nil {
			s.terminate(Error{Reason: "key derivation failed", Err: err})
			return
		}

		if s.matcher.Matches(kp.Address) {
			s.terminate(Success{Result: Result{
				Network:    cfg.Network,
				Address:    kp.Address,
				PublicKey:  kp.PublicKey,
				PrivateKey: kp.PrivateKey,
				Mnemonic:   mnemonic,
				Path:       s.deriver.Path(),
				Attempts:   n,
				Elapsed:    time.Since(s.start),
			}})
			return
		}

		if n%cfg.ProgressInterval == 0 {
			if !s.send(Progress{Attempts: n}) {
				return
			}
		}
		if n%cfg.YieldInterval == 0 {
			runtime.Gosched()
		}
	}
}

// send blocks until msg is delivered, the search ends or ctx is cancelled.
func (s *search) send(msg Message) bool {
	select {
	case s.out <- Envelope{JobID: s.cfg.JobID, Msg: msg}:
		return true
	case <-s.done:
		return false
	case <-s.ctx.Done():
		return false
	}
}

// terminate delivers the first terminal message and stops the other
// goroutines. Later calls do nothing.
func (s *search) terminate(msg Message) {
	s.closeOnce.Do(func() {
		close(s.done)
		select {
		case s.out <- Envelope{JobID: s.cfg.JobID, Msg: msg}:
		case <-s.ctx.Done():
		}
	})
}

// stopped makes one non-blocking attempt to tell the owner why we quit.
func (s *search) stopped() {
	s.closeOnce.Do(func() {
		close(s.done)
		select {
		case s.out <- Envelope{JobID: s.cfg.JobID, Msg: Error{Reason: "cancelled", Err: s.ctx.Err()}}:
		default:
		}
	})
}
