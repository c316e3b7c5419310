package worker

import (
	"errors"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/keys"
)

// ErrExhausted is carried by the Error message a worker sends when it hits
// MaxAttempts without a match.
var ErrExhausted = errors.New("max attempts exhausted")

// Message is one of Progress, Success or Error.
type Message interface {
	message()
}

// Progress reports the attempts made so far.
type Progress struct {
	Attempts uint64
}

// Success carries the matching keypair. It is terminal.
type Success struct {
	Result Result
}

// Error reports why the worker stopped. It is terminal.
type Error struct {
	Reason string
	Err    error
}

func (Progress) message() {}
func (Success) message()  {}
func (Error) message()    {}

// Envelope tags a message with the job it belongs to.
type Envelope struct {
	JobID string
	Msg   Message
}

// Result contains a found vanity address and its secret material.
type Result struct {
	Network    keys.Network
	Address    string
	PublicKey  string
	PrivateKey string
	Mnemonic   string // BIP-39 seed phrase; re-derives the keypair along Path
	Path       string
	Attempts   uint64
	Elapsed    time.Duration
}
