package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/jobs"
	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

// Environment variables read for secrets so they stay out of shell history.
const (
	EnvPassphrase    = "VANITY_PASSPHRASE"
	EnvPushoverToken = "PUSHOVER_APP_TOKEN"
	EnvPushoverUser  = "PUSHOVER_USER_KEY"
)

// Errors
var (
	ErrMaxConcurrent = errors.New("--max-concurrent must be at least 1")
	ErrTimeout       = errors.New("--timeout must be positive")
	ErrNotifyStep    = errors.New("--notify-step must be at least 1")
	ErrMaxAttempts   = errors.New("--max-attempts must be at least 1")
	ErrThreads       = errors.New("--threads must be at least 1")
	ErrPushoverPair  = errors.New("--pushover-token and --pushover-user must be set together")
)

// Config holds the application configuration
type Config struct {
	Network       string
	Match         string
	MaxConcurrent int
	Timeout       time.Duration
	NotifyStep    uint64
	MaxAttempts   uint64
	Threads       int
	RejectExtreme bool
	LowPriority   bool

	Store      string // wallet store DSN or file path
	Passphrase string

	PushoverToken string
	PushoverUser  string

	Verbose bool
	LogFile string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	def := jobs.DefaultConfig()
	return &Config{
		Network:       "solana",
		Match:         string(pattern.Prefix),
		MaxConcurrent: def.MaxConcurrent,
		Timeout:       def.JobTimeout,
		NotifyStep:    def.ProgressNotifyStep,
		MaxAttempts:   def.MaxAttempts,
		Threads:       def.Threads,
		Store:         "wallets.jsonl",
		Passphrase:    os.Getenv(EnvPassphrase),
		PushoverToken: os.Getenv(EnvPushoverToken),
		PushoverUser:  os.Getenv(EnvPushoverUser),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if _, err := keys.ParseNetwork(c.Network); err != nil {
		errs = append(errs, err)
	}
	if _, err := pattern.ParseMatchType(c.Match); err != nil {
		errs = append(errs, err)
	}
	if c.MaxConcurrent < 1 {
		errs = append(errs, ErrMaxConcurrent)
	}
	if c.Timeout <= 0 {
		errs = append(errs, ErrTimeout)
	}
	if c.NotifyStep < 1 {
		errs = append(errs, ErrNotifyStep)
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, ErrMaxAttempts)
	}
	if c.Threads < 1 {
		errs = append(errs, ErrThreads)
	}
	if (c.PushoverToken == "") != (c.PushoverUser == "") {
		errs = append(errs, ErrPushoverPair)
	}

	return errors.Join(errs...)
}

// MatchType returns the parsed --match value.
func (c *Config) MatchType() (pattern.MatchType, error) {
	return pattern.ParseMatchType(c.Match)
}

// Pushover reports whether Pushover notifications are configured.
func (c *Config) Pushover() bool {
	return c.PushoverToken != "" && c.PushoverUser != ""
}

// JobsConfig maps the flags onto the job manager limits.
func (c *Config) JobsConfig() (jobs.Config, error) {
	network, err := keys.ParseNetwork(c.Network)
	if err != nil {
		return jobs.Config{}, err
	}

	jc := jobs.DefaultConfig()
	jc.Network = network
	jc.MaxConcurrent = c.MaxConcurrent
	jc.JobTimeout = c.Timeout
	jc.ProgressNotifyStep = c.NotifyStep
	jc.MaxAttempts = c.MaxAttempts
	jc.Threads = c.Threads
	jc.RejectExtreme = c.RejectExtreme
	return jc, nil
}

// Describe returns a one-line summary for the startup log.
func (c *Config) Describe() string {
	store := c.Store
	if store == "" {
		store = "none"
	}
	sealed := "plain"
	if c.Passphrase != "" {
		sealed = "sealed"
	}
	return fmt.Sprintf("network=%s max-concurrent=%d threads=%d timeout=%v notify-step=%d store=%s (%s)",
		c.Network, c.MaxConcurrent, c.Threads, c.Timeout, c.NotifyStep, store, sealed)
}
