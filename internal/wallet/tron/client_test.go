package tron_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/tron-custody/internal/wallet/tron"
)

func newTestNode(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestNewClientRejectsInvalidURL(t *testing.T) {
	_, err := tron.NewClient("://not-a-url", "", time.Second)
	require.Error(t, err)

	_, err = tron.NewClient("ftp://node.invalid", "", time.Second)
	require.Error(t, err)
}

func TestGetNowBlock(t *testing.T) {
	node := newTestNode(t, map[string]http.HandlerFunc{
		"/wallet/getnowblock": func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, true, payload["visible"])
			assert.Equal(t, "test-key", r.Header.Get("TRON-PRO-API-KEY"))

			_, _ = w.Write([]byte(`{"blockID":"abc","block_header":{"raw_data":{"number":123456,"timestamp":1700000000000}}}`))
		},
	})

	client, err := tron.NewClient(node.URL, "test-key", time.Second)
	require.NoError(t, err)

	block, err := client.GetNowBlock(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(123456), block.BlockHeader.RawData.Number)
}

func TestGetAccountNotFound(t *testing.T) {
	node := newTestNode(t, map[string]http.HandlerFunc{
		"/wallet/getaccount": func(w http.ResponseWriter, _ *http.Request) {
			// the node answers unknown addresses with an empty object
			_, _ = w.Write([]byte(`{}`))
		},
	})

	client, err := tron.NewClient(node.URL, "", time.Second)
	require.NoError(t, err)

	_, err = client.GetAccount(t.Context(), "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf")
	require.Error(t, err)
	assert.ErrorIs(t, err, tron.ErrNotFound)
}

func TestGetAccountBalance(t *testing.T) {
	node := newTestNode(t, map[string]http.HandlerFunc{
		"/wallet/getaccount": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"address":"TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf","balance":2500000}`))
		},
	})

	client, err := tron.NewClient(node.URL, "", time.Second)
	require.NoError(t, err)

	account, err := client.GetAccount(t.Context(), "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf")
	require.NoError(t, err)
	assert.Equal(t, int64(2500000), account.Balance)
}

func TestCreateTransactionNodeError(t *testing.T) {
	node := newTestNode(t, map[string]http.HandlerFunc{
		"/wallet/createtransaction": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Error":"Contract validate error : balance is not sufficient."}`))
		},
	})

	client, err := tron.NewClient(node.URL, "", time.Second)
	require.NoError(t, err)

	_, err = client.CreateTransaction(t.Context(), "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8", "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf", 1000000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance is not sufficient")
}

func TestStatusCodeError(t *testing.T) {
	node := newTestNode(t, map[string]http.HandlerFunc{
		"/wallet/getnowblock": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	})

	client, err := tron.NewClient(node.URL, "", time.Second)
	require.NoError(t, err)

	_, err = client.GetNowBlock(t.Context())
	require.Error(t, err)
}
