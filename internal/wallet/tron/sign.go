package tron

import (
	"crypto/ecdsa"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// SignTransaction signs tx in place. The txID already is the SHA-256 of
// raw_data, so the signature is computed over the hex-decoded txID.
func SignTransaction(tx *Transaction, privateKey *ecdsa.PrivateKey) error {
	if tx == nil || tx.TxID == "" {
		return errors.New("tron: cannot sign transaction without txID")
	}

	hash, err := hex.DecodeString(tx.TxID)
	if err != nil {
		return errors.Wrap(err, "tron: decode txID")
	}

	signature, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return errors.Wrap(err, "tron: sign transaction")
	}

	tx.Signature = append(tx.Signature, hex.EncodeToString(signature))

	return nil
}
