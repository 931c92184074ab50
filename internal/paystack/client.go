// Package paystack wraps the Paystack hosted-payment API: initialize a
// transaction, redirect the buyer to the authorization URL, verify the
// outcome by reference. Gateway rejections (non-2xx, status=false, malformed
// body) surface as *GatewayError; transport failures, including the bounded
// client timeout, surface as plain errors so callers can retry them.
package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction statuses reported in the verify response data.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// GatewayError is a definitive rejection from Paystack, as opposed to a
// transport-level failure where the outcome is unknown.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paystack: %s (http %d)", e.Message, e.StatusCode)
}

// Config holds the client settings.
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client talks to the Paystack REST API.
type Client struct {
	http *resty.Client
}

// New builds a Client with a bounded request timeout. A zero timeout defaults
// to 15s; gateway calls must never hang a checkout indefinitely.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.paystack.co"
	}

	httpClient := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// GenerateReference produces a globally-unique opaque reference correlating a
// local order with the gateway transaction.
func GenerateReference(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// Metadata is carried through the gateway and echoed back on verify.
type Metadata struct {
	OrderID string `json:"order_id"`
}

// InitializeInput is the payload for a hosted-payment handoff.
type InitializeInput struct {
	Email       string
	Amount      decimal.Decimal
	Reference   string
	CallbackURL string
	Metadata    Metadata
}

// Authorization is the successful initialize result.
type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize starts a transaction and returns the URL the buyer is redirected
// to. Amounts are sent in subunits (kobo) as the API requires.
func (c *Client) Initialize(ctx context.Context, in InitializeInput) (*Authorization, error) {
	body := map[string]interface{}{
		"email":     in.Email,
		"amount":    subunits(in.Amount),
		"reference": in.Reference,
		"metadata":  in.Metadata,
	}
	if in.CallbackURL != "" {
		body["callback_url"] = in.CallbackURL
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}

	data, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var auth Authorization
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "malformed initialize data"}
	}
	if auth.AuthorizationURL == "" {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "initialize response missing authorization url"}
	}
	return &auth, nil
}

// VerifyResult is the transaction state reported by the verify endpoint. A
// true envelope status only means the lookup worked; Status must equal
// StatusSuccess before the payment counts as confirmed.
type VerifyResult struct {
	Status         string   `json:"status"`
	Reference      string   `json:"reference"`
	AmountSubunits int64    `json:"amount"`
	GatewayMessage string   `json:"gateway_response"`
	Metadata       Metadata `json:"metadata"`
}

// Verify looks up a transaction by reference.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("reference", reference).
		Get("/transaction/verify/{reference}")
	if err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}

	data, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var result VerifyResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "malformed verify data"}
	}
	if result.Status == "" {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "verify response missing transaction status"}
	}
	return &result, nil
}

func decodeEnvelope(resp *resty.Response) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "malformed response body"}
	}
	if resp.IsError() || !env.Status {
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return env.Data, nil
}

// subunits converts a decimal major amount to integer subunits, rounding
// half-up on fractional kobo.
func subunits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
