// Package notify delivers job status text to requesters.
package notify

import (
	"context"
	"errors"

	"github.com/Amr-9/vanityjobs/internal/logger"
	"github.com/Amr-9/vanityjobs/pkg/jobs"
)

// Console writes notifications through a logger.
type Console struct {
	log *logger.Logger
}

// NewConsole returns a Console writing to l.
func NewConsole(l *logger.Logger) *Console {
	return &Console{log: l}
}

// Notify implements jobs.Notifier.
func (c *Console) Notify(_ context.Context, requesterID string, kind jobs.Kind, text string) error {
	c.log.Printf("[%s] %s: %s", requesterID, kind, text)
	return nil
}

// Multi fans a notification out to several notifiers.
type Multi []jobs.Notifier

// Notify calls every notifier and joins their errors.
func (m Multi) Notify(ctx context.Context, requesterID string, kind jobs.Kind, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, requesterID, kind, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Filter forwards only the listed kinds to Next.
type Filter struct {
	Next  jobs.Notifier
	Kinds []jobs.Kind
}

// Notify implements jobs.Notifier.
func (f Filter) Notify(ctx context.Context, requesterID string, kind jobs.Kind, text string) error {
	for _, k := range f.Kinds {
		if k == kind {
			return f.Next.Notify(ctx, requesterID, kind, text)
		}
	}
	return nil
}
