package wallet_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/tron-custody/internal/api"
	"github/chapool/tron-custody/internal/api/handlers"
	"github/chapool/tron-custody/internal/config"
	walletsvc "github/chapool/tron-custody/internal/wallet"
	"github/chapool/tron-custody/internal/wallet/deposit"
	"github/chapool/tron-custody/internal/wallet/keystore"
	"github/chapool/tron-custody/internal/wallet/scan"
	"github/chapool/tron-custody/internal/wallet/withdraw"
)

// stubWalletService lets handler tests run without a database or node.
type stubWalletService struct {
	withdrawTxID string
	withdrawErr  error
	withdrawReq  withdraw.Request
	feeSun       int64
	monitored    []deposit.Wallet
}

func (s *stubWalletService) CreateWallet(_ context.Context) (*walletsvc.NewWallet, error) {
	return &walletsvc.NewWallet{Address: "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"}, nil
}

func (s *stubWalletService) FetchTransactions(_ context.Context, _ string) []scan.ParsedTransaction {
	return []scan.ParsedTransaction{}
}

func (s *stubWalletService) GetBalance(_ context.Context, _ string) (string, error) {
	return "12.5", nil
}

func (s *stubWalletService) IsAddressActivated(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (s *stubWalletService) MonitorDeposits(wallet deposit.Wallet, _ string) {
	s.monitored = append(s.monitored, wallet)
}

func (s *stubWalletService) HandleWithdrawal(_ context.Context, req withdraw.Request, _ withdraw.Reporter) (string, error) {
	s.withdrawReq = req

	return s.withdrawTxID, s.withdrawErr
}

func (s *stubWalletService) EstimateFee(_ context.Context, _ string, _ string, _ int64) int64 {
	return s.feeSun
}

func (s *stubWalletService) Stop() {}

func newTestServer(t *testing.T, stub *stubWalletService) *api.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.EnablePrometheusMiddleware = false

	s := api.NewServer(cfg)
	s.Wallet = stub
	api.InitRouter(s)
	handlers.AttachAllRoutes(s)

	return s
}

func TestPostWithdraw(t *testing.T) {
	stub := &stubWalletService{withdrawTxID: "chain-tx-id"}
	s := newTestServer(t, stub)

	body := `{"transactionId":"row-1","walletId":"wallet-1","amount":"1.5","toAddress":"TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/withdraw", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chain-tx-id")
	assert.Equal(t, "row-1", stub.withdrawReq.TransactionID)
	assert.Equal(t, "1.5", stub.withdrawReq.Amount.String())
}

func TestPostWithdrawInvalidAmount(t *testing.T) {
	s := newTestServer(t, &stubWalletService{})

	body := `{"transactionId":"row-1","walletId":"wallet-1","amount":"-3","toAddress":"TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/withdraw", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostWithdrawMissingSecret(t *testing.T) {
	s := newTestServer(t, &stubWalletService{withdrawErr: keystore.ErrSecretNotFound})

	body := `{"transactionId":"row-1","walletId":"wallet-1","amount":"1","toAddress":"TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/withdraw", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMonitor(t *testing.T) {
	stub := &stubWalletService{}
	s := newTestServer(t, stub)

	body := `{"walletId":"wallet-1","userId":"user-1","address":"TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/monitor", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, stub.monitored, 1)
	assert.Equal(t, "user-1", stub.monitored[0].UserID)
}

func TestGetFee(t *testing.T) {
	s := newTestServer(t, &stubWalletService{feeSun: 3000000})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/fee?from=TJRabPrwbZy45sbavfcjinPJC18kjpRTv8&to=TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf&amount=1000000", nil)
	rec := httptest.NewRecorder()

	s.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "3000000")
}

func TestGetBalanceInvalidAddress(t *testing.T) {
	s := newTestServer(t, &stubWalletService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/balance?address=garbage", nil)
	rec := httptest.NewRecorder()

	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
