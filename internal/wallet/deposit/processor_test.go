package deposit_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/tron-custody/internal/wallet/deposit"
	"github/chapool/tron-custody/internal/wallet/tron"
)

type stubDepositChain struct {
	tron.Client

	tx      *tron.Transaction
	info    *tron.TransactionInfo
	infoErr error
}

func (c *stubDepositChain) GetTransactionByID(_ context.Context, _ string) (*tron.Transaction, error) {
	return c.tx, nil
}

func (c *stubDepositChain) GetTransactionInfoByID(_ context.Context, _ string) (*tron.TransactionInfo, error) {
	if c.infoErr != nil {
		return nil, c.infoErr
	}

	return c.info, nil
}

type recordingNotifier struct {
	events []deposit.Event
}

func (n *recordingNotifier) NotifyDeposit(_ context.Context, event deposit.Event) error {
	n.events = append(n.events, event)

	return nil
}

func TestProcessorNotifiesExactlyOnce(t *testing.T) {
	chain := &stubDepositChain{
		tx: &tron.Transaction{
			TxID: "deposit-tx",
			Ret:  []tron.TxResult{{ContractRet: "SUCCESS"}},
			RawData: tron.TxRawData{
				Contract: []tron.Contract{{
					Type: tron.TransferContractType,
					Parameter: tron.ContractParameter{
						Value: tron.ContractValue{
							OwnerAddress: "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8",
							ToAddress:    watched,
							Amount:       7500000,
						},
					},
				}},
			},
		},
		info: &tron.TransactionInfo{
			ID:          "deposit-tx",
			Fee:         268000,
			BlockNumber: 123456,
		},
	}
	notifier := &recordingNotifier{}
	processor := deposit.NewProcessor(chain, notifier)

	err := processor.Process(t.Context(), "deposit-tx", deposit.Wallet{ID: "wallet-1", UserID: "user-1"}, watched)
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, "TRON", event.Chain)
	assert.Equal(t, "DEPOSIT", event.Type)
	assert.Equal(t, "COMPLETED", event.Status)
	assert.Equal(t, "deposit-tx", event.Hash)
	assert.Equal(t, "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8", event.From)
	assert.Equal(t, watched, event.To)
	assert.Equal(t, "7.5", event.Amount)
	assert.Equal(t, "0.268", event.Fee)
}

func TestProcessorPropagatesChainErrors(t *testing.T) {
	chain := &stubDepositChain{infoErr: errors.New("node unavailable")}
	notifier := &recordingNotifier{}
	processor := deposit.NewProcessor(chain, notifier)

	err := processor.Process(t.Context(), "deposit-tx", deposit.Wallet{ID: "wallet-1", UserID: "user-1"}, watched)
	require.Error(t, err)
	assert.Empty(t, notifier.events)
}
