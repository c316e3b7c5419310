package jobs

import (
	"context"
)

// delivery is one unit of outbound work for the delivery goroutine. A
// terminal delivery carries the outcome and the ticket channel to settle.
type delivery struct {
	requesterID string
	kind        Kind
	text        string

	outcome *Outcome
	done    chan Outcome
}

func (d delivery) terminal() bool { return d.outcome != nil }

// enqueue hands d to the delivery goroutine. Progress notices are dropped
// when the queue is full; everything else waits for room.
func (m *Manager) enqueue(d delivery) {
	if d.kind == KindProgress {
		select {
		case m.deliveries <- d:
		default:
			m.log.Debugf("delivery queue full, dropping progress for %s", d.requesterID)
		}
		return
	}
	m.deliveries <- d
}

// deliver runs notifier and wallet store calls off the loop goroutine, in
// the order the loop queued them.
func (m *Manager) deliver() {
	defer close(m.deliveryDone)

	for d := range m.deliveries {
		if !d.terminal() {
			m.notify(d.requesterID, d.kind, d.text)
			continue
		}

		out := *d.outcome
		if out.State == Succeeded && out.Result != nil {
			out.PersistErr = m.persist(out)
		}
		m.notify(out.RequesterID, d.kind, outcomeText(out))

		d.done <- out
		close(d.done)
	}
}

func (m *Manager) persist(out Outcome) error {
	if m.store == nil {
		m.log.Debugf("no wallet store configured, job %s result not persisted", out.JobID)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.DeliveryTimeout)
	defer cancel()

	if err := m.store.Persist(ctx, out.RequesterID, *out.Result); err != nil {
		m.log.Printf("Error persisting result of job %s: %v", out.JobID, err)
		return err
	}
	return nil
}

func (m *Manager) notify(requesterID string, kind Kind, text string) {
	if m.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.DeliveryTimeout)
	defer cancel()

	if err := m.notifier.Notify(ctx, requesterID, kind, text); err != nil {
		m.log.Printf("Error notifying %s (%s): %v", requesterID, kind, err)
	}
}
