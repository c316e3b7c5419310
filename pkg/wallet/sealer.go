package wallet

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for deriving the sealing key from a passphrase.
const (
	scryptN   = 1 << 15
	scryptR   = 8
	scryptP   = 1
	saltBytes = 16
)

var (
	ErrNoPassphrase = errors.New("sealer needs a passphrase")
	ErrSealed       = errors.New("sealed value is corrupt or the passphrase is wrong")
)

// Sealer encrypts secret fields with a passphrase-derived key. Every value
// gets its own random salt and nonce.
type Sealer struct {
	passphrase []byte
}

// NewSealer returns a Sealer for passphrase.
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}
	return &Sealer{passphrase: []byte(passphrase)}, nil
}

// Seal encrypts plain and returns base64(salt || nonce || ciphertext).
func (s *Sealer) Seal(plain string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}
	aead, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("reading nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)

	return base64.StdEncoding.EncodeToString(append(salt, sealed...)), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealed, err)
	}
	if len(raw) < saltBytes+chacha20poly1305.NonceSizeX {
		return "", ErrSealed
	}

	aead, err := s.aead(raw[:saltBytes])
	if err != nil {
		return "", err
	}
	body := raw[saltBytes:]
	nonce, ciphertext := body[:aead.NonceSize()], body[aead.NonceSize():]

	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSealed
	}
	return string(plain), nil
}

func (s *Sealer) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
