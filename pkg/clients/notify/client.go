package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Real-Lux/Farm-App-sub001/internal/config"
)

// Client exposes the outbound notification operations used by the
// application. Implementations post to whatever channel the farm wires up
// behind the webhook (messaging bridge, mail relay, ...).
type Client interface {
	SendOrderConfirmation(ctx context.Context, event OrderConfirmation) error
	SendCollectionReminder(ctx context.Context, event CollectionReminder) error
}

// OrderConfirmation is emitted once an order has been priced and persisted.
type OrderConfirmation struct {
	OrderID               string   `json:"order_id"`
	Client                string   `json:"client"`
	GrandTotal            string   `json:"grand_total"`
	CollectionDate        string   `json:"collection_date,omitempty"`
	MissingPricingSpecies []string `json:"missing_pricing_species,omitempty"`
}

// CollectionReminder is emitted by the scheduler for orders whose suggested
// collection date is imminent.
type CollectionReminder struct {
	OrderID        string `json:"order_id"`
	Client         string `json:"client"`
	CollectionDate string `json:"collection_date"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook notification client from the provided
// configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// apiError represents an error payload returned by the webhook endpoint.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendOrderConfirmation posts an order_confirmed event.
func (c *WebhookClient) SendOrderConfirmation(ctx context.Context, event OrderConfirmation) error {
	return c.post(ctx, "order_confirmed", event)
}

// SendCollectionReminder posts a collection_due event.
func (c *WebhookClient) SendCollectionReminder(ctx context.Context, event CollectionReminder) error {
	return c.post(ctx, "collection_due", event)
}

func (c *WebhookClient) post(ctx context.Context, event string, payload any) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookEnvelope{Event: event, Payload: payload}).
		SetError(apiErr).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send %s notification: %w", event, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Error.Message
			if apiErr.Error.Code != 0 {
				code = apiErr.Error.Code
			}
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", code, message)
	}

	return nil
}
