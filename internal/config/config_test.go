package config

import (
	"errors"
	"testing"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv(EnvPassphrase, "from-env")
	t.Setenv(EnvPushoverToken, "")
	t.Setenv(EnvPushoverUser, "")

	c := NewConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.MaxConcurrent != 3 || c.Timeout != 30*time.Minute || c.NotifyStep != 10000 {
		t.Errorf("defaults = %+v", c)
	}
	if c.Passphrase != "from-env" {
		t.Errorf("Passphrase = %q, want value from %s", c.Passphrase, EnvPassphrase)
	}
	if c.Pushover() {
		t.Error("Pushover() = true without credentials")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"network", func(c *Config) { c.Network = "dogecoin" }, keys.ErrUnknownNetwork},
		{"match", func(c *Config) { c.Match = "middle" }, pattern.ErrMatchType},
		{"max concurrent", func(c *Config) { c.MaxConcurrent = 0 }, ErrMaxConcurrent},
		{"timeout", func(c *Config) { c.Timeout = 0 }, ErrTimeout},
		{"notify step", func(c *Config) { c.NotifyStep = 0 }, ErrNotifyStep},
		{"max attempts", func(c *Config) { c.MaxAttempts = 0 }, ErrMaxAttempts},
		{"threads", func(c *Config) { c.Threads = 0 }, ErrThreads},
		{"pushover half", func(c *Config) { c.PushoverToken = "tok"; c.PushoverUser = "" }, ErrPushoverPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig()
			c.PushoverToken, c.PushoverUser = "", ""
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateReportsEverything(t *testing.T) {
	c := NewConfig()
	c.MaxConcurrent = 0
	c.Timeout = -time.Second
	err := c.Validate()
	if !errors.Is(err, ErrMaxConcurrent) || !errors.Is(err, ErrTimeout) {
		t.Errorf("Validate() = %v, want both errors", err)
	}
}

func TestJobsConfig(t *testing.T) {
	c := NewConfig()
	c.Network = "trx"
	c.MaxConcurrent = 5
	c.Timeout = time.Minute
	c.NotifyStep = 500
	c.MaxAttempts = 1_000_000
	c.RejectExtreme = true
	c.Threads = 2

	jc, err := c.JobsConfig()
	if err != nil {
		t.Fatal(err)
	}
	if jc.Network != keys.Tron || jc.MaxConcurrent != 5 || jc.JobTimeout != time.Minute ||
		jc.ProgressNotifyStep != 500 || jc.MaxAttempts != 1_000_000 || !jc.RejectExtreme || jc.Threads != 2 {
		t.Errorf("JobsConfig() = %+v", jc)
	}

	c.Network = "doge"
	if _, err := c.JobsConfig(); !errors.Is(err, keys.ErrUnknownNetwork) {
		t.Errorf("JobsConfig() err = %v", err)
	}
}

func TestMatchType(t *testing.T) {
	c := NewConfig()
	c.Match = "suffix"
	mt, err := c.MatchType()
	if err != nil || mt != pattern.Suffix {
		t.Errorf("MatchType() = %v, %v", mt, err)
	}
}
