package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// job is owned by the manager loop; nothing else reads or writes it.
type job struct {
	id          string
	requesterID string
	pattern     string
	matchType   pattern.MatchType
	network     keys.Network
	difficulty  pattern.Difficulty

	state        State
	reason       string
	startedAt    time.Time
	deadline     time.Time
	attempts     uint64
	lastNotified uint64

	cancel context.CancelFunc
	timer  Timer
	done   chan Outcome
}

// Ticket is returned by Start for an admitted job.
type Ticket struct {
	JobID      string
	Difficulty pattern.Difficulty

	// Done receives exactly one Outcome when the job ends, then closes.
	Done <-chan Outcome
}

// StatusView is a read-only snapshot of an active job.
type StatusView struct {
	JobID       string
	RequesterID string
	Pattern     string
	MatchType   pattern.MatchType
	Network     keys.Network
	State       State
	StartedAt   time.Time
	Elapsed     time.Duration
	Deadline    time.Time
	Difficulty  pattern.Difficulty
	Attempts    uint64
}

// Outcome describes how a job ended. Result is set only on success; the
// manager keeps no copy of it.
type Outcome struct {
	JobID       string
	RequesterID string
	State       State
	Reason      string
	Attempts    uint64
	Elapsed     time.Duration
	Result      *worker.Result

	// PersistErr is the wallet store error, if persisting failed. It is
	// not retried.
	PersistErr error
}

// Err returns nil for a successful job and a wrapped sentinel otherwise.
func (o Outcome) Err() error {
	switch o.State {
	case Succeeded:
		return nil
	case Exhausted:
		return fmt.Errorf("job %s: %w after %d attempts", o.JobID, ErrExhausted, o.Attempts)
	case TimedOut:
		return fmt.Errorf("job %s: %w", o.JobID, ErrTimedOut)
	case Cancelled:
		return fmt.Errorf("job %s: %w: %s", o.JobID, ErrCancelled, o.Reason)
	default:
		return fmt.Errorf("job %s: %w: %s", o.JobID, ErrFailed, o.Reason)
	}
}

func (j *job) view(now time.Time) StatusView {
	return StatusView{
		JobID:       j.id,
		RequesterID: j.requesterID,
		Pattern:     j.pattern,
		MatchType:   j.matchType,
		Network:     j.network,
		State:       j.state,
		StartedAt:   j.startedAt,
		Elapsed:     now.Sub(j.startedAt),
		Deadline:    j.deadline,
		Difficulty:  j.difficulty,
		Attempts:    j.attempts,
	}
}
