package keys

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

const (
	// TronPath is the BIP-44 path registered for TRX (coin type 195).
	TronPath = "m/44'/195'/0'/0/0"

	// TronMainnetPrefix is the address prefix for Tron mainnet (0x41)
	TronMainnetPrefix = 0x41

	tronCoinType = 195
)

type tronDeriver struct{}

func (tronDeriver) Path() string     { return TronPath }
func (tronDeriver) Network() Network { return Tron }

func (tronDeriver) Derive(seed []byte) (Keypair, error) {
	privKey, err := deriveBIP44(seed, tronCoinType)
	if err != nil {
		return Keypair{}, err
	}

	pubKey := privKey.PubKey()
	return Keypair{
		Address:    TronAddress(pubKey.SerializeUncompressed()),
		PublicKey:  hex.EncodeToString(pubKey.SerializeCompressed()),
		PrivateKey: hex.EncodeToString(privKey.Serialize()),
	}, nil
}

// TronAddress derives a Tron address from an uncompressed public key.
// Tron address = Base58Check(0x41 + last 20 bytes of Keccak256(pubKey[1:]))
// All Tron addresses start with 'T'.
func TronAddress(uncompressed []byte) string {
	// Skip the 0x04 prefix, hash the 64-byte X||Y
	hash := crypto.Keccak256(uncompressed[1:])

	data := make([]byte, 21)
	data[0] = TronMainnetPrefix
	copy(data[1:], hash[len(hash)-20:])

	return Base58CheckEncode(data)
}

// Base58CheckEncode encodes data with a 4-byte double-SHA256 checksum in Base58.
func Base58CheckEncode(data []byte) string {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	full := make([]byte, 0, len(data)+4)
	full = append(full, data...)
	full = append(full, second[:4]...)

	return base58.Encode(full)
}
