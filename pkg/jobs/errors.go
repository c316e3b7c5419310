package jobs

import (
	"errors"
	"fmt"

	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// Admission errors, returned synchronously by Start.
var (
	ErrAlreadyActive    = errors.New("requester already has an active job")
	ErrConcurrencyLimit = errors.New("concurrency limit reached")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrTooHard          = errors.New("pattern estimate is extreme")
	ErrClosed           = errors.New("job manager is shut down")
)

// Terminal outcomes, reported through Outcome.Err.
var (
	ErrFailed    = errors.New("search failed")
	ErrExhausted = worker.ErrExhausted
	ErrTimedOut  = errors.New("search timed out")
	ErrCancelled = errors.New("search cancelled")
)

// InvalidPatternError carries the validator's errors for a rejected pattern.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap lets errors.Is match both ErrInvalidPattern and the validator sentinels.
func (e *InvalidPatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}
