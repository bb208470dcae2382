package tron_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/tron-custody/internal/wallet/tron"
)

func TestGenerateWallet(t *testing.T) {
	wallet, err := tron.GenerateWallet()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(wallet.Address, "T"))
	assert.True(t, tron.ValidateAddress(wallet.Address))
	assert.Len(t, strings.Fields(wallet.Mnemonic), 12)
	assert.Equal(t, "m/44'/195'/0'/0/0", wallet.DerivationPath)

	// the persisted private key must reproduce the same address
	privateKey, err := tron.PrivateKeyFromHex(wallet.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, wallet.Address, tron.AddressFromPrivateKey(privateKey))
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	wallet, err := tron.GenerateWallet()
	require.NoError(t, err)

	first, err := tron.DeriveKey(wallet.Mnemonic)
	require.NoError(t, err)
	second, err := tron.DeriveKey(wallet.Mnemonic)
	require.NoError(t, err)

	assert.Equal(t, first.D, second.D)
	assert.Equal(t, wallet.Address, tron.AddressFromPrivateKey(first))
}

func TestValidateAddress(t *testing.T) {
	assert.False(t, tron.ValidateAddress(""))
	assert.False(t, tron.ValidateAddress("not-an-address"))
	assert.False(t, tron.ValidateAddress("0x8894e0a0c962cb722c1d52933742bde9a3c22de5"))
}

func TestSignTransaction(t *testing.T) {
	wallet, err := tron.GenerateWallet()
	require.NoError(t, err)

	privateKey, err := tron.PrivateKeyFromHex(wallet.PrivateKey)
	require.NoError(t, err)

	tx := &tron.Transaction{TxID: "7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc"}
	require.NoError(t, tron.SignTransaction(tx, privateKey))

	require.Len(t, tx.Signature, 1)
	// 65 byte recoverable signature, hex encoded
	assert.Len(t, tx.Signature[0], 130)
}

func TestSignTransactionWithoutTxID(t *testing.T) {
	wallet, err := tron.GenerateWallet()
	require.NoError(t, err)

	privateKey, err := tron.PrivateKeyFromHex(wallet.PrivateKey)
	require.NoError(t, err)

	err = tron.SignTransaction(&tron.Transaction{}, privateKey)
	require.Error(t, err)
}
