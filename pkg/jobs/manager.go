// Package jobs coordinates vanity search jobs: admission control, worker
// supervision, deadlines, and hand-off of results to the notifier and
// wallet store.
//
// A single loop goroutine owns the job table. Start, Cancel, Status, worker
// messages and deadline firings are all funnelled through it, so the table
// needs no lock.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Amr-9/vanityjobs/internal/logger"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// Manager owns the active jobs of one process.
type Manager struct {
	cfg      Config
	clock    Clock
	notifier Notifier
	store    WalletStore
	spawn    Spawner
	log      *logger.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once

	requests   chan func()
	inbox      chan worker.Envelope
	expired    chan string
	deliveries chan delivery

	loopDone     chan struct{}
	deliveryDone chan struct{}

	// owned by the loop goroutine
	active map[string]*job // by requester
	byID   map[string]*job
}

// NewManager starts a manager. Call Shutdown to stop it.
func NewManager(cfg Config, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		cfg:    cfg.withDefaults(),
		clock:  realClock{},
		spawn:  worker.Spawn,
		log:    logger.New(),
		ctx:    ctx,
		cancel: cancel,

		requests: make(chan func()),
		// Unbuffered: a worker's send completes only once the loop has the
		// message, which keeps message and request ordering deterministic.
		inbox:   make(chan worker.Envelope),
		expired: make(chan string),

		loopDone:     make(chan struct{}),
		deliveryDone: make(chan struct{}),

		active: make(map[string]*job),
		byID:   make(map[string]*job),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.deliveries = make(chan delivery, m.cfg.QueueSize)

	go m.loop()
	go m.deliver()
	return m
}

// Start admits a new job for requesterID.
func (m *Manager) Start(ctx context.Context, requesterID, p string, mt pattern.MatchType) (Ticket, error) {
	var (
		t   Ticket
		err error
	)
	if cerr := m.call(ctx, func() { t, err = m.start(requesterID, p, mt) }); cerr != nil {
		return Ticket{}, cerr
	}
	return t, err
}

// Cancel stops the requester's active job. It returns false if there is none.
func (m *Manager) Cancel(requesterID, reason string) bool {
	var ok bool
	_ = m.call(context.Background(), func() { ok = m.cancelJob(requesterID, reason) })
	return ok
}

// Status returns a snapshot of the requester's active job.
func (m *Manager) Status(requesterID string) (StatusView, bool) {
	var (
		v  StatusView
		ok bool
	)
	_ = m.call(context.Background(), func() {
		if j, found := m.active[requesterID]; found {
			v, ok = j.view(m.clock.Now()), true
		}
	})
	return v, ok
}

// Active returns the number of active jobs.
func (m *Manager) Active() int {
	var n int
	_ = m.call(context.Background(), func() { n = len(m.active) })
	return n
}

// Shutdown cancels every active job, stops the loop and waits up to timeout
// for pending notifications and persists to drain.
func (m *Manager) Shutdown(timeout time.Duration) {
	m.stopOnce.Do(m.cancel)
	<-m.loopDone

	select {
	case <-m.deliveryDone:
		m.log.Debugf("job manager stopped cleanly")
	case <-time.After(timeout):
		m.log.Printf("job manager shutdown timed out after %v with deliveries pending", timeout)
	}
}

// call runs fn on the loop goroutine and waits for it.
func (m *Manager) call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	req := func() {
		defer close(done)
		fn()
	}

	select {
	case m.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ctx.Done():
		return ErrClosed
	}
	<-done
	return nil
}

func (m *Manager) loop() {
	defer close(m.loopDone)
	defer close(m.deliveries)

	for {
		select {
		case <-m.ctx.Done():
			for _, j := range m.active {
				m.finish(j, Cancelled, "shutting down", nil)
			}
			return
		case fn := <-m.requests:
			fn()
		case env := <-m.inbox:
			m.onWorkerMessage(env)
		case id := <-m.expired:
			m.onDeadline(id)
		}
	}
}

func (m *Manager) start(requesterID, p string, mt pattern.MatchType) (Ticket, error) {
	if _, ok := m.active[requesterID]; ok {
		return Ticket{}, ErrAlreadyActive
	}
	if len(m.active) >= m.cfg.MaxConcurrent {
		return Ticket{}, fmt.Errorf("%w (%d active)", ErrConcurrencyLimit, len(m.active))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Ticket{}, fmt.Errorf("allocating job id: %w", err)
	}
	j := &job{
		id:          id.String(),
		requesterID: requesterID,
		pattern:     p,
		matchType:   mt,
		network:     m.cfg.Network,
		state:       Validating,
		done:        make(chan Outcome, 1),
	}

	d, err := pattern.Validate(p, mt)
	if err != nil {
		return Ticket{}, &InvalidPatternError{Pattern: p, Err: err}
	}
	if m.cfg.RejectExtreme && d.Warning == pattern.Extreme {
		return Ticket{}, fmt.Errorf("%w: about %s at %d attempts/sec", ErrTooHard, d.EstimatedTime(), pattern.ReferenceThroughput)
	}
	j.difficulty = d

	ctx, cancel := context.WithCancel(m.ctx)
	j.cancel = cancel
	j.state = Running
	j.startedAt = m.clock.Now()
	j.deadline = j.startedAt.Add(m.cfg.JobTimeout)
	j.timer = m.armDeadline(j.id, m.cfg.JobTimeout)

	m.active[requesterID] = j
	m.byID[j.id] = j

	m.spawn(ctx, worker.Config{
		JobID:            j.id,
		Pattern:          p,
		MatchType:        mt,
		Network:          j.network,
		ProgressInterval: m.cfg.ProgressInterval,
		YieldInterval:    m.cfg.YieldInterval,
		MaxAttempts:      m.cfg.MaxAttempts,
		Threads:          m.cfg.Threads,
	}, m.inbox)

	m.log.Printf("job %s started for %s: %s %s %q (1/%.0f, ~%s)",
		j.id, requesterID, j.network, mt, p, d.Base, d.EstimatedTime())
	m.enqueue(delivery{requesterID: requesterID, kind: KindStart, text: startText(j)})

	return Ticket{JobID: j.id, Difficulty: d, Done: j.done}, nil
}

func (m *Manager) armDeadline(id string, d time.Duration) Timer {
	return m.clock.AfterFunc(d, func() {
		select {
		case m.expired <- id:
		case <-m.ctx.Done():
		}
	})
}

func (m *Manager) cancelJob(requesterID, reason string) bool {
	j, ok := m.active[requesterID]
	if !ok {
		return false
	}
	if reason == "" {
		reason = "cancelled by requester"
	}
	m.finish(j, Cancelled, reason, nil)
	return true
}

func (m *Manager) onWorkerMessage(env worker.Envelope) {
	j, ok := m.byID[env.JobID]
	if !ok || j.state.Terminal() {
		m.log.Debugf("dropping %T for finished job %s", env.Msg, env.JobID)
		return
	}

	switch msg := env.Msg.(type) {
	case worker.Progress:
		m.onProgress(j, msg.Attempts)
	case worker.Success:
		res := msg.Result
		matcher := pattern.NewMatcher(j.pattern, j.matchType, j.network.LeadingSymbols())
		if !matcher.Matches(res.Address) {
			m.finish(j, Failed, fmt.Sprintf("worker reported non-matching address %s", res.Address), nil)
			return
		}
		m.finish(j, Succeeded, "", &res)
	case worker.Error:
		if errors.Is(msg.Err, worker.ErrExhausted) {
			m.finish(j, Exhausted, msg.Reason, nil)
			return
		}
		m.finish(j, Failed, msg.Reason, nil)
	}
}

func (m *Manager) onProgress(j *job, attempts uint64) {
	if attempts > j.attempts {
		j.attempts = attempts
	}

	now := m.clock.Now()
	if !now.Before(j.deadline) {
		m.finish(j, TimedOut, "timed out", nil)
		return
	}

	if j.attempts-j.lastNotified < m.cfg.ProgressNotifyStep {
		return
	}
	j.lastNotified = j.attempts
	m.enqueue(delivery{
		requesterID: j.requesterID,
		kind:        KindProgress,
		text:        progressText(j.attempts, now.Sub(j.startedAt), j.difficulty),
	})
}

func (m *Manager) onDeadline(id string) {
	j, ok := m.byID[id]
	if !ok || j.state != Running {
		return
	}
	if now := m.clock.Now(); now.Before(j.deadline) {
		j.timer = m.armDeadline(id, j.deadline.Sub(now))
		return
	}
	m.finish(j, TimedOut, "timed out", nil)
}

// finish is the only way a job leaves Running. Calling it on a job that is
// already terminal does nothing.
func (m *Manager) finish(j *job, state State, reason string, result *worker.Result) {
	if j.state.Terminal() {
		return
	}
	j.state = state
	j.reason = reason

	if j.timer != nil {
		j.timer.Stop()
	}
	j.cancel()
	delete(m.active, j.requesterID)
	delete(m.byID, j.id)

	attempts := j.attempts
	if result != nil && result.Attempts > attempts {
		attempts = result.Attempts
	}
	out := Outcome{
		JobID:       j.id,
		RequesterID: j.requesterID,
		State:       state,
		Reason:      reason,
		Attempts:    attempts,
		Elapsed:     m.clock.Now().Sub(j.startedAt),
		Result:      result,
	}

	if reason != "" {
		m.log.Printf("job %s for %s %s after %d attempts: %s", j.id, j.requesterID, state, attempts, reason)
	} else {
		m.log.Printf("job %s for %s %s after %d attempts", j.id, j.requesterID, state, attempts)
	}

	m.enqueue(delivery{requesterID: j.requesterID, kind: kindFor(state), outcome: &out, done: j.done})
}
