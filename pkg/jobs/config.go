package jobs

import (
	"context"
	"time"

	"github.com/Amr-9/vanityjobs/internal/logger"
	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// Config holds the limits the manager enforces.
type Config struct {
	// MaxConcurrent is the process-wide ceiling on active jobs.
	MaxConcurrent int

	// JobTimeout is how long a job may run before it is timed out.
	JobTimeout time.Duration

	// ProgressNotifyStep is the minimum attempt increase between two
	// progress notifications for the same job.
	ProgressNotifyStep uint64

	// Network selects the key derivation and address format.
	Network keys.Network

	// Worker tuning; zero values use the worker defaults.
	ProgressInterval uint64
	YieldInterval    uint64
	MaxAttempts      uint64

	// Threads is the number of search goroutines per job.
	Threads int

	// RejectExtreme makes Start refuse patterns with an extreme estimate.
	RejectExtreme bool

	// DeliveryTimeout bounds each notifier and wallet store call.
	DeliveryTimeout time.Duration

	// QueueSize is the capacity of the delivery queue. Progress
	// notifications are dropped when it is full.
	QueueSize int
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:      3,
		JobTimeout:         30 * time.Minute,
		ProgressNotifyStep: 10000,
		Network:            keys.Solana,
		ProgressInterval:   worker.DefaultProgressInterval,
		YieldInterval:      worker.DefaultYieldInterval,
		MaxAttempts:        worker.DefaultMaxAttempts,
		Threads:            1,
		DeliveryTimeout:    30 * time.Second,
		QueueSize:          256,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = def.MaxConcurrent
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = def.JobTimeout
	}
	if c.ProgressNotifyStep == 0 {
		c.ProgressNotifyStep = def.ProgressNotifyStep
	}
	if c.ProgressInterval == 0 {
		c.ProgressInterval = def.ProgressInterval
	}
	if c.YieldInterval == 0 {
		c.YieldInterval = def.YieldInterval
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.Threads <= 0 {
		c.Threads = def.Threads
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = def.DeliveryTimeout
	}
	if c.QueueSize <= 0 {
		c.QueueSize = def.QueueSize
	}
	return c
}

// Notifier pushes human-readable status text to a requester.
type Notifier interface {
	Notify(ctx context.Context, requesterID string, kind Kind, text string) error
}

// WalletStore durably persists a successful result.
type WalletStore interface {
	Persist(ctx context.Context, requesterID string, result worker.Result) error
}

// Spawner starts a search worker that reports on out until ctx is cancelled.
type Spawner func(ctx context.Context, cfg worker.Config, out chan<- worker.Envelope)

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier sets the notifier collaborator.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithWalletStore sets the wallet store collaborator.
func WithWalletStore(s WalletStore) Option {
	return func(m *Manager) { m.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithSpawner replaces the goroutine worker launcher.
func WithSpawner(s Spawner) Option {
	return func(m *Manager) { m.spawn = s }
}
