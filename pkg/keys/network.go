// Package keys derives vanity keypairs from BIP-39 seeds.
// Each supported network has a fixed derivation path, so the same seed
// always reproduces the same address.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNetwork is returned by ParseNetwork for unsupported names.
var ErrUnknownNetwork = errors.New("unknown network")

// Network represents the blockchain network for address generation.
type Network int

const (
	Solana  Network = iota // Solana (Ed25519, Base58)
	Tron                   // Tron (secp256k1, Keccak-256, Base58Check)
	Bitcoin                // Bitcoin legacy P2PKH (secp256k1, HASH160, Base58Check)
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Solana:
		return "Solana"
	case Tron:
		return "Tron"
	case Bitcoin:
		return "Bitcoin"
	default:
		return "Unknown"
	}
}

// ParseNetwork parses a network name or ticker.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solana", "sol":
		return Solana, nil
	case "tron", "trx":
		return Tron, nil
	case "bitcoin", "btc":
		return Bitcoin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
}

// LeadingSymbols is the number of fixed symbols every address of the
// network starts with ('T' for Tron, '1' for P2PKH).
func (n Network) LeadingSymbols() int {
	switch n {
	case Tron, Bitcoin:
		return 1
	default:
		return 0
	}
}

// Keypair is a derived key and its encoded address.
type Keypair struct {
	Address    string // Base58 address
	PublicKey  string // Base58 (Solana) or hex (secp256k1, compressed)
	PrivateKey string // Base58 keypair (Solana), hex (Tron) or WIF (Bitcoin)
}

// Deriver derives a keypair from a BIP-39 seed along a fixed path.
type Deriver interface {
	Derive(seed []byte) (Keypair, error)

	// Path returns the derivation path, e.g. "m/44'/501'/0'/0'".
	Path() string

	Network() Network
}

// NewDeriver returns the deriver for a network.
func NewDeriver(n Network) (Deriver, error) {
	switch n {
	case Solana:
		return solanaDeriver{}, nil
	case Tron:
		return tronDeriver{}, nil
	case Bitcoin:
		return bitcoinDeriver{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownNetwork, int(n))
}
