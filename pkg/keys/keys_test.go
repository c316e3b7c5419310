package keys

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
)

// Known test mnemonic from the BIP-39 vectors
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestSLIP10Vector1(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	master := slip10Master(seed)
	assertHex(t, "master key", master.key, "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7")
	assertHex(t, "master chain code", master.chainCode, "90046a93de5380a72b5e45010748567d5ea02bbf6522f979e05c0d8d8ca9fffb")

	child := master.child(0)
	assertHex(t, "m/0' key", child.key, "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3")
	assertHex(t, "m/0' chain code", child.chainCode, "8b59aa11380b624e81507a27fedda59fea6d0b779a778918a2fd3590e16e9c69")
}

func assertHex(t *testing.T, name string, got []byte, want string) {
	t.Helper()
	if h := hex.EncodeToString(got); h != want {
		t.Errorf("%s mismatch:\n  got:      %s\n  expected: %s", name, h, want)
	}
}

func TestBitcoinBIP44Vector(t *testing.T) {
	kp, err := Recover(Bitcoin, testMnemonic)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	// Expected address for "abandon..." mnemonic at m/44'/0'/0'/0/0
	expected := "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"
	if kp.Address != expected {
		t.Errorf("P2PKH address mismatch:\n  got:      %s\n  expected: %s", kp.Address, expected)
	}
	if !strings.HasPrefix(kp.PrivateKey, "K") && !strings.HasPrefix(kp.PrivateKey, "L") {
		t.Errorf("compressed WIF should start with K or L, got %s", kp.PrivateKey)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	for _, n := range []Network{Solana, Tron, Bitcoin} {
		t.Run(n.String(), func(t *testing.T) {
			mnemonic, seed, err := NewSeed()
			if err != nil {
				t.Fatalf("NewSeed failed: %v", err)
			}
			d, err := NewDeriver(n)
			if err != nil {
				t.Fatalf("NewDeriver failed: %v", err)
			}

			first, err := d.Derive(seed)
			if err != nil {
				t.Fatalf("Derive failed: %v", err)
			}
			again, err := Recover(n, mnemonic)
			if err != nil {
				t.Fatalf("Recover failed: %v", err)
			}
			if first != again {
				t.Errorf("same seed produced different keypairs:\n  %+v\n  %+v", first, again)
			}
		})
	}
}

func TestSolanaKeypair(t *testing.T) {
	kp, err := Recover(Solana, testMnemonic)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	pub, err := base58.Decode(kp.Address)
	if err != nil {
		t.Fatalf("address is not base58: %v", err)
	}
	if len(pub) != 32 {
		t.Errorf("public key length = %d, want 32", len(pub))
	}

	priv, err := base58.Decode(kp.PrivateKey)
	if err != nil {
		t.Fatalf("private key is not base58: %v", err)
	}
	if len(priv) != 64 {
		t.Fatalf("keypair length = %d, want 64", len(priv))
	}
	if !bytes.Equal(priv[32:], pub) {
		t.Error("keypair should end with the public key")
	}
}

func TestTronAddress(t *testing.T) {
	kp, err := Recover(Tron, testMnemonic)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if !strings.HasPrefix(kp.Address, "T") || len(kp.Address) != 34 {
		t.Fatalf("unexpected Tron address %q", kp.Address)
	}

	raw, err := base58.Decode(kp.Address)
	if err != nil {
		t.Fatalf("address is not base58: %v", err)
	}
	if len(raw) != 25 || raw[0] != TronMainnetPrefix {
		t.Fatalf("decoded address = %x", raw)
	}
	first := sha256.Sum256(raw[:21])
	second := sha256.Sum256(first[:])
	if !bytes.Equal(second[:4], raw[21:]) {
		t.Error("checksum mismatch")
	}
}

func TestSeedFromMnemonicRejectsGarbage(t *testing.T) {
	if _, err := SeedFromMnemonic("abandon abandon abandon"); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("expected ErrInvalidMnemonic, got %v", err)
	}
}

func TestParseNetwork(t *testing.T) {
	tests := []struct {
		in   string
		want Network
		skip int
	}{
		{"", Solana, 0},
		{"SOL", Solana, 0},
		{"tron", Tron, 1},
		{"btc", Bitcoin, 1},
	}
	for _, tt := range tests {
		got, err := ParseNetwork(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseNetwork(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if got.LeadingSymbols() != tt.skip {
			t.Errorf("%v.LeadingSymbols() = %d, want %d", got, got.LeadingSymbols(), tt.skip)
		}
	}
	if _, err := ParseNetwork("ethereum"); !errors.Is(err, ErrUnknownNetwork) {
		t.Errorf("expected ErrUnknownNetwork, got %v", err)
	}
}
