package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// BitcoinPath is the BIP-44 path for legacy P2PKH addresses.
const BitcoinPath = "m/44'/0'/0'/0/0"

type bitcoinDeriver struct{}

func (bitcoinDeriver) Path() string     { return BitcoinPath }
func (bitcoinDeriver) Network() Network { return Bitcoin }

// Derive creates a P2PKH (1...) address: Base58Check(0x00 + HASH160(compressed pubkey)).
func (bitcoinDeriver) Derive(seed []byte) (Keypair, error) {
	privKey, err := deriveBIP44(seed, 0)
	if err != nil {
		return Keypair{}, err
	}

	pubKeyBytes := privKey.PubKey().SerializeCompressed()
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKeyBytes), &chaincfg.MainNetParams)
	if err != nil {
		return Keypair{}, fmt.Errorf("creating P2PKH address: %w", err)
	}

	// Compressed WIF (starts with K or L on mainnet)
	wif, err := btcutil.NewWIF(privKey, &chaincfg.MainNetParams, true)
	if err != nil {
		return Keypair{}, fmt.Errorf("creating WIF: %w", err)
	}

	return Keypair{
		Address:    addr.EncodeAddress(),
		PublicKey:  hex.EncodeToString(pubKeyBytes),
		PrivateKey: wif.String(),
	}, nil
}
