package keys

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/mr-tron/base58"
)

// SolanaPath is the path used by the Solana CLI and most wallets.
const SolanaPath = "m/44'/501'/0'/0'"

const hardenedOffset = 0x80000000

var solanaIndexes = []uint32{44, 501, 0, 0}

// slip10Key is an ed25519 node: 32-byte key and 32-byte chain code.
type slip10Key struct {
	key       []byte
	chainCode []byte
}

// slip10Master computes the SLIP-10 ed25519 master node for a seed.
func slip10Master(seed []byte) slip10Key {
	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return slip10Key{key: sum[:32], chainCode: sum[32:]}
}

// child derives a hardened child. ed25519 only supports hardened derivation.
func (k slip10Key) child(index uint32) slip10Key {
	var data [1 + 32 + 4]byte
	copy(data[1:33], k.key)
	binary.BigEndian.PutUint32(data[33:], index|hardenedOffset)

	mac := hmac.New(sha512.New, k.chainCode)
	mac.Write(data[:])
	sum := mac.Sum(nil)
	return slip10Key{key: sum[:32], chainCode: sum[32:]}
}

type solanaDeriver struct{}

func (solanaDeriver) Path() string     { return SolanaPath }
func (solanaDeriver) Network() Network { return Solana }

// Derive walks m/44'/501'/0'/0' and encodes the ed25519 public key in Base58.
func (solanaDeriver) Derive(seed []byte) (Keypair, error) {
	if len(seed) < 16 {
		return Keypair{}, errors.New("seed too short")
	}

	node := slip10Master(seed)
	for _, idx := range solanaIndexes {
		node = node.child(idx)
	}

	privKey := ed25519.NewKeyFromSeed(node.key)
	pubKey := privKey.Public().(ed25519.PublicKey)

	// Solana address is the Base58-encoded public key; the secret is the
	// 64-byte keypair (seed + pubkey) wallets import.
	address := base58.Encode(pubKey)
	return Keypair{
		Address:    address,
		PublicKey:  address,
		PrivateKey: base58.Encode(privKey),
	}, nil
}
