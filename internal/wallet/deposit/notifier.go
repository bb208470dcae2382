package deposit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github/chapool/tron-custody/internal/util"
)

// Notifier 是充值入账回调. 记账模块未部署时注入 NopNotifier,
// 监控链路照常运行, 只是不产生外部副作用.
type Notifier interface {
	NotifyDeposit(ctx context.Context, event Event) error
}

// NopNotifier discards all deposit events.
type NopNotifier struct{}

func (NopNotifier) NotifyDeposit(ctx context.Context, event Event) error {
	util.LogFromContext(ctx).Debug().Str("hash", event.Hash).Msg("Deposit notifier not configured, event dropped")

	return nil
}

// WebhookNotifier posts deposit events as JSON to a configured endpoint.
type WebhookNotifier struct {
	url  string
	http *http.Client
}

func NewWebhookNotifier(url string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = http.DefaultClient
	}

	return &WebhookNotifier{url: url, http: client}
}

func (n *WebhookNotifier) NotifyDeposit(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal deposit event")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build deposit webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to deliver deposit webhook")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))

		return errors.Errorf("deposit webhook returned status %d: %s", res.StatusCode, string(body))
	}

	return nil
}
