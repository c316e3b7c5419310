package keys

import (
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// EntropyBits gives a 12-word mnemonic.
const EntropyBits = 128

// ErrInvalidMnemonic is returned when a mnemonic fails the BIP-39 checksum.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewSeed draws fresh entropy and returns the mnemonic with its 64-byte seed.
func NewSeed() (mnemonic string, seed []byte, err error) {
	entropy, err := bip39.NewEntropy(EntropyBits)
	if err != nil {
		return "", nil, fmt.Errorf("generating entropy: %w", err)
	}

	mnemonic, err = bip39.NewMnemonic(entropy)
	if err != nil {
		return "", nil, fmt.Errorf("creating mnemonic: %w", err)
	}

	return mnemonic, bip39.NewSeed(mnemonic, ""), nil
}

// SeedFromMnemonic validates a mnemonic and returns its seed.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(mnemonic, ""), nil
}

// Recover re-derives the keypair a mnemonic produces on a network.
func Recover(n Network, mnemonic string) (Keypair, error) {
	seed, err := SeedFromMnemonic(mnemonic)
	if err != nil {
		return Keypair{}, err
	}
	d, err := NewDeriver(n)
	if err != nil {
		return Keypair{}, err
	}
	return d.Derive(seed)
}
