package withdraw_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/tron-custody/internal/wallet/keystore"
	"github/chapool/tron-custody/internal/wallet/tron"
	"github/chapool/tron-custody/internal/wallet/withdraw"
)

const (
	testPrivateKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	testTxID       = "7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc"
	destination    = "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"
)

type stubWithdrawChain struct {
	tron.Client

	createdAmount int64
	createErr     error
	broadcast     *tron.BroadcastResult
	broadcastErr  error
	signatures    int
}

func (c *stubWithdrawChain) CreateTransaction(_ context.Context, _ string, _ string, amountSun int64) (*tron.Transaction, error) {
	if c.createErr != nil {
		return nil, c.createErr
	}
	c.createdAmount = amountSun

	return &tron.Transaction{TxID: testTxID}, nil
}

func (c *stubWithdrawChain) BroadcastTransaction(_ context.Context, tx *tron.Transaction) (*tron.BroadcastResult, error) {
	if c.broadcastErr != nil {
		return nil, c.broadcastErr
	}
	c.signatures = len(tx.Signature)

	return c.broadcast, nil
}

type stubKeystore struct {
	secret *keystore.Secret
	err    error
}

func (s *stubKeystore) GetSecret(_ context.Context, _ string, _ string, _ string) (*keystore.Secret, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.secret, nil
}

func (s *stubKeystore) SaveSecret(_ context.Context, _ string, _ string, _ string, _ *keystore.Secret) error {
	return nil
}

type recordingLedger struct {
	completedTxID string
	failedReason  string
}

func (l *recordingLedger) MarkWithdrawalCompleted(_ context.Context, _ string, chainTxID string) error {
	l.completedTxID = chainTxID

	return nil
}

func (l *recordingLedger) MarkWithdrawalFailed(_ context.Context, _ string, reason string) error {
	l.failedReason = reason

	return nil
}

type recordingReporter struct {
	steps     []string
	succeeded string
	failed    error
}

func (r *recordingReporter) OnStep(step string)    { r.steps = append(r.steps, step) }
func (r *recordingReporter) OnSuccess(txID string) { r.succeeded = txID }
func (r *recordingReporter) OnFail(err error)      { r.failed = err }

func validKeystore() *stubKeystore {
	return &stubKeystore{secret: &keystore.Secret{PrivateKey: testPrivateKey}}
}

func request(amount string) withdraw.Request {
	return withdraw.Request{
		TransactionID: "ledger-row-1",
		WalletID:      "wallet-1",
		Amount:        decimal.RequireFromString(amount),
		ToAddress:     destination,
	}
}

func TestWithdrawAmountConversion(t *testing.T) {
	chain := &stubWithdrawChain{broadcast: &tron.BroadcastResult{Result: true, TxID: testTxID}}
	ledger := &recordingLedger{}
	service := withdraw.NewService(chain, validKeystore(), ledger)

	txID, err := service.Withdraw(t.Context(), request("1.5"), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1500000), chain.createdAmount)
	assert.Equal(t, testTxID, txID)
	assert.Equal(t, testTxID, ledger.completedTxID)
	assert.Equal(t, 1, chain.signatures)
}

func TestWithdrawBroadcastRejected(t *testing.T) {
	chain := &stubWithdrawChain{broadcast: &tron.BroadcastResult{Result: false, Code: "SIGERROR", Message: "validate signature error"}}
	ledger := &recordingLedger{}
	reporter := &recordingReporter{}
	service := withdraw.NewService(chain, validKeystore(), ledger)

	_, err := service.Withdraw(t.Context(), request("2"), reporter)
	require.Error(t, err)

	assert.ErrorIs(t, err, withdraw.ErrBroadcastRejected)
	assert.NotEmpty(t, ledger.failedReason)
	assert.Contains(t, ledger.failedReason, "SIGERROR")
	assert.Empty(t, ledger.completedTxID)
	require.Error(t, reporter.failed)
	assert.Empty(t, reporter.succeeded)
}

func TestWithdrawMissingSecret(t *testing.T) {
	chain := &stubWithdrawChain{}
	ledger := &recordingLedger{}
	service := withdraw.NewService(chain, &stubKeystore{err: keystore.ErrSecretNotFound}, ledger)

	_, err := service.Withdraw(t.Context(), request("1"), nil)
	require.Error(t, err)

	assert.ErrorIs(t, err, keystore.ErrSecretNotFound)
	assert.NotEmpty(t, ledger.failedReason)
	assert.Zero(t, chain.createdAmount)
}

func TestWithdrawCorruptKeyMaterial(t *testing.T) {
	chain := &stubWithdrawChain{}
	ledger := &recordingLedger{}
	service := withdraw.NewService(chain, &stubKeystore{secret: &keystore.Secret{PrivateKey: "not-hex"}}, ledger)

	_, err := service.Withdraw(t.Context(), request("1"), nil)
	require.Error(t, err)

	assert.ErrorIs(t, err, keystore.ErrDecrypt)
	assert.NotEmpty(t, ledger.failedReason)
}

func TestWithdrawBuildFailure(t *testing.T) {
	chain := &stubWithdrawChain{createErr: errors.New("node unavailable")}
	ledger := &recordingLedger{}
	service := withdraw.NewService(chain, validKeystore(), ledger)

	_, err := service.Withdraw(t.Context(), request("1"), nil)
	require.Error(t, err)

	assert.True(t, strings.Contains(ledger.failedReason, "node unavailable"))
}

func TestWithdrawReporterCallbacks(t *testing.T) {
	chain := &stubWithdrawChain{broadcast: &tron.BroadcastResult{Result: true, TxID: testTxID}}
	reporter := &recordingReporter{}
	service := withdraw.NewService(chain, validKeystore(), &recordingLedger{})

	_, err := service.Withdraw(t.Context(), request("0.000001"), reporter)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "broadcast"}, reporter.steps)
	assert.Equal(t, testTxID, reporter.succeeded)
	assert.NoError(t, reporter.failed)
}
