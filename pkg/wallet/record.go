// Package wallet persists found vanity keypairs.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// ErrDuplicate is returned when an address has already been stored.
var ErrDuplicate = errors.New("address already stored")

// Store is a wallet store backend.
type Store interface {
	Persist(ctx context.Context, requesterID string, result worker.Result) error
	Close() error
}

// Record is one stored wallet. When Sealed is set, PrivateKey and Mnemonic
// hold Sealer output rather than plain text.
type Record struct {
	RequesterID string    `json:"requester_id"`
	Network     string    `json:"network"`
	Address     string    `json:"address"`
	PublicKey   string    `json:"public_key"`
	PrivateKey  string    `json:"private_key"`
	Mnemonic    string    `json:"mnemonic"`
	Path        string    `json:"path"`
	Attempts    uint64    `json:"attempts"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	Sealed      bool      `json:"sealed"`
	CreatedAt   time.Time `json:"created_at"`
}

func newRecord(requesterID string, r worker.Result, s *Sealer) (Record, error) {
	rec := Record{
		RequesterID: requesterID,
		Network:     strings.ToLower(r.Network.String()),
		Address:     r.Address,
		PublicKey:   r.PublicKey,
		PrivateKey:  r.PrivateKey,
		Mnemonic:    r.Mnemonic,
		Path:        r.Path,
		Attempts:    r.Attempts,
		ElapsedMS:   r.Elapsed.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}
	if s == nil {
		return rec, nil
	}

	var err error
	if rec.PrivateKey, err = s.Seal(r.PrivateKey); err != nil {
		return Record{}, fmt.Errorf("sealing private key: %w", err)
	}
	if rec.Mnemonic, err = s.Seal(r.Mnemonic); err != nil {
		return Record{}, fmt.Errorf("sealing mnemonic: %w", err)
	}
	rec.Sealed = true
	return rec, nil
}

// Reveal returns a copy of r with its secret fields opened.
func (r Record) Reveal(s *Sealer) (Record, error) {
	if !r.Sealed {
		return r, nil
	}
	if s == nil {
		return Record{}, ErrNoPassphrase
	}

	var err error
	if r.PrivateKey, err = s.Open(r.PrivateKey); err != nil {
		return Record{}, fmt.Errorf("opening private key of %s: %w", r.Address, err)
	}
	if r.Mnemonic, err = s.Open(r.Mnemonic); err != nil {
		return Record{}, fmt.Errorf("opening mnemonic of %s: %w", r.Address, err)
	}
	r.Sealed = false
	return r, nil
}
