package tron

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when the node has no record for the requested
// entity (unknown transaction, never-activated account).
var ErrNotFound = errors.New("tron: not found")

const apiKeyHeader = "TRON-PRO-API-KEY"

// Client talks to a TRON full node over its HTTP wallet API. All requests
// use visible=true so addresses travel in base58 form.
type Client interface {
	GetNowBlock(ctx context.Context) (*Block, error)
	GetBlockByNum(ctx context.Context, num int64) (*Block, error)
	GetAccount(ctx context.Context, address string) (*Account, error)
	GetAccountNet(ctx context.Context, address string) (*AccountNet, error)
	GetTransactionByID(ctx context.Context, txID string) (*Transaction, error)
	GetTransactionInfoByID(ctx context.Context, txID string) (*TransactionInfo, error)
	CreateTransaction(ctx context.Context, from string, to string, amountSun int64) (*Transaction, error)
	BroadcastTransaction(ctx context.Context, tx *Transaction) (*BroadcastResult, error)
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient validates the node URL and returns a client. A malformed URL
// is a configuration error and fails here rather than on first use.
//
//nolint:ireturn
func NewClient(nodeURL string, apiKey string, timeout time.Duration) (Client, error) {
	u, err := url.Parse(nodeURL)
	if err != nil {
		return nil, errors.Wrap(err, "tron: invalid node url")
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, errors.Errorf("tron: invalid node url %q", nodeURL)
	}

	return &client{
		baseURL: nodeURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "tron: marshal request")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "tron: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "tron: POST %s", path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "tron: read response of %s", path)
	}
	if res.StatusCode != http.StatusOK {
		return errors.Errorf("tron: POST %s returned status %d: %s", path, res.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "tron: decode response of %s", path)
	}

	log.Ctx(ctx).Trace().Str("path", path).Int("bytes", len(raw)).Msg("Node request done")

	return nil
}

func (c *client) GetNowBlock(ctx context.Context) (*Block, error) {
	block := &Block{}
	if err := c.post(ctx, "/wallet/getnowblock", map[string]interface{}{"visible": true}, block); err != nil {
		return nil, err
	}

	return block, nil
}

func (c *client) GetBlockByNum(ctx context.Context, num int64) (*Block, error) {
	block := &Block{}
	payload := map[string]interface{}{"num": num, "visible": true}
	if err := c.post(ctx, "/wallet/getblockbynum", payload, block); err != nil {
		return nil, err
	}
	if block.BlockID == "" {
		return nil, errors.Wrapf(ErrNotFound, "block %d", num)
	}

	return block, nil
}

// GetAccount returns ErrNotFound for addresses that never appeared on
// chain; the node answers those with an empty JSON object.
func (c *client) GetAccount(ctx context.Context, address string) (*Account, error) {
	account := &Account{}
	payload := map[string]interface{}{"address": address, "visible": true}
	if err := c.post(ctx, "/wallet/getaccount", payload, account); err != nil {
		return nil, err
	}
	if account.Address == "" {
		return nil, errors.Wrapf(ErrNotFound, "account %s", address)
	}

	return account, nil
}

func (c *client) GetAccountNet(ctx context.Context, address string) (*AccountNet, error) {
	net := &AccountNet{}
	payload := map[string]interface{}{"address": address, "visible": true}
	if err := c.post(ctx, "/wallet/getaccountnet", payload, net); err != nil {
		return nil, err
	}

	return net, nil
}

func (c *client) GetTransactionByID(ctx context.Context, txID string) (*Transaction, error) {
	tx := &Transaction{}
	payload := map[string]interface{}{"value": txID, "visible": true}
	if err := c.post(ctx, "/wallet/gettransactionbyid", payload, tx); err != nil {
		return nil, err
	}
	if tx.TxID == "" {
		return nil, errors.Wrapf(ErrNotFound, "transaction %s", txID)
	}

	return tx, nil
}

func (c *client) GetTransactionInfoByID(ctx context.Context, txID string) (*TransactionInfo, error) {
	info := &TransactionInfo{}
	payload := map[string]interface{}{"value": txID, "visible": true}
	if err := c.post(ctx, "/wallet/gettransactioninfobyid", payload, info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, errors.Wrapf(ErrNotFound, "transaction info %s", txID)
	}

	return info, nil
}

// CreateTransaction asks the node to assemble an unsigned TRX transfer.
func (c *client) CreateTransaction(ctx context.Context, from string, to string, amountSun int64) (*Transaction, error) {
	type createResponse struct {
		Transaction
		Error string `json:"Error"`
	}

	res := &createResponse{}
	payload := map[string]interface{}{
		"owner_address": from,
		"to_address":    to,
		"amount":        amountSun,
		"visible":       true,
	}
	if err := c.post(ctx, "/wallet/createtransaction", payload, res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, errors.Errorf("tron: createtransaction: %s", res.Error)
	}
	if res.TxID == "" {
		return nil, errors.New("tron: createtransaction returned no txID")
	}

	tx := res.Transaction

	return &tx, nil
}

func (c *client) BroadcastTransaction(ctx context.Context, tx *Transaction) (*BroadcastResult, error) {
	res := &BroadcastResult{}
	if err := c.post(ctx, "/wallet/broadcasttransaction", tx, res); err != nil {
		return nil, err
	}
	if res.TxID == "" {
		res.TxID = tx.TxID
	}

	return res, nil
}
