package tron

import (
	"crypto/ecdsa"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	sdkaddress "github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// DerivationPath is the BIP-44 path for the first TRON external address.
const DerivationPath = "m/44'/195'/0'/0/0"

// Wallet is a freshly generated key pair with its chain address.
type Wallet struct {
	Address        string
	Mnemonic       string
	PublicKey      string
	PrivateKey     string
	DerivationPath string
}

// GenerateWallet creates a new BIP-39 mnemonic and derives the first
// TRON account key at m/44'/195'/0'/0/0.
func GenerateWallet() (*Wallet, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return nil, errors.Wrap(err, "tron: generate entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, errors.Wrap(err, "tron: generate mnemonic")
	}

	privateKey, err := DeriveKey(mnemonic)
	if err != nil {
		return nil, err
	}

	publicKey := privateKey.Public().(*ecdsa.PublicKey)

	return &Wallet{
		Address:        sdkaddress.PubkeyToAddress(*publicKey).String(),
		Mnemonic:       mnemonic,
		PublicKey:      hex.EncodeToString(crypto.FromECDSAPub(publicKey)),
		PrivateKey:     hex.EncodeToString(crypto.FromECDSA(privateKey)),
		DerivationPath: DerivationPath,
	}, nil
}

// DeriveKey derives the private key at DerivationPath from a mnemonic.
func DeriveKey(mnemonic string) (*ecdsa.PrivateKey, error) {
	seed := bip39.NewSeed(mnemonic, "")

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "tron: derive master key")
	}

	// m/44'/195'/0'/0/0
	path := []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 195,
		bip32.FirstHardenedChild,
		0,
		0,
	}

	derivedKey := masterKey
	for _, index := range path {
		derivedKey, err = derivedKey.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "tron: derive child key %d", index)
		}
	}

	privateKey, err := crypto.ToECDSA(derivedKey.Key)
	if err != nil {
		return nil, errors.Wrap(err, "tron: convert derived key")
	}

	return privateKey, nil
}

// PrivateKeyFromHex parses a hex encoded secp256k1 private key.
func PrivateKeyFromHex(s string) (*ecdsa.PrivateKey, error) {
	privateKey, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, errors.Wrap(err, "tron: parse private key")
	}

	return privateKey, nil
}

// AddressFromPrivateKey returns the base58 address of a private key.
func AddressFromPrivateKey(privateKey *ecdsa.PrivateKey) string {
	publicKey := privateKey.Public().(*ecdsa.PublicKey)

	return sdkaddress.PubkeyToAddress(*publicKey).String()
}

// ValidateAddress reports whether s is a well-formed base58 TRON address.
func ValidateAddress(s string) bool {
	addr, err := sdkaddress.Base58ToAddress(s)
	if err != nil {
		return false
	}

	return addr.String() == s
}

// NormalizeAddress converts a hex node address (41-prefixed) into base58
// form. Base58 input passes through unchanged.
func NormalizeAddress(s string) string {
	if s == "" || s[0] == 'T' {
		return s
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return s
	}

	return sdkaddress.Address(raw).String()
}
