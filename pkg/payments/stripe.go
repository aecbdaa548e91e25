package payments

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gamestorehq/gamestore/pkg/httpclient"
)

const (
	stripeAPIBase = "https://api.stripe.com/v1"

	// gatewayTimeout bounds the session-creation call. Expiry surfaces as a
	// GatewayError; the cart entry is untouched and checkout can be retried.
	gatewayTimeout = 10 * time.Second
)

// StripeGateway creates Stripe Checkout sessions over the form-encoded API.
type StripeGateway struct {
	secretKey string
	baseURL   string
}

// NewStripeGateway builds a gateway client with the given API key.
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{secretKey: secretKey, baseURL: stripeAPIBase}
}

// NewStripeGatewayWithBase points the client at a non-default API host.
// Used by tests.
func NewStripeGatewayWithBase(secretKey, baseURL string) *StripeGateway {
	return &StripeGateway{secretKey: secretKey, baseURL: baseURL}
}

// CreateCheckoutSession creates a one-shot payment session for exactly one
// unit of the given item and returns the hosted checkout URL.
// Session creation is not idempotent, so the call is never retried.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := url.Values{}
	params.Set("mode", "payment")
	params.Set("line_items[0][quantity]", "1")
	params.Set("line_items[0][price_data][currency]", "usd")
	params.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.Item.UnitAmount, 10))
	params.Set("line_items[0][price_data][product_data][name]", req.Item.Name)
	if req.Item.ImageURL != "" {
		params.Set("line_items[0][price_data][product_data][images][0]", req.Item.ImageURL)
	}
	params.Set("success_url", req.SuccessURL)
	params.Set("cancel_url", req.CancelURL)

	resp, err := httpclient.Post(g.baseURL+"/checkout/sessions").
		Bearer(g.secretKey).
		Form(params).
		Timeout(gatewayTimeout).
		WithContext(ctx).
		Send()
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	if !resp.OK() {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = resp.JSON(&apiErr)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
	}

	var session Session
	if err := resp.JSON(&session); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Err: err}
	}

	return &session, nil
}
