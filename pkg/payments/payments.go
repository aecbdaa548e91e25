// Package payments talks to the external payment gateway (Stripe Checkout).
//
// The store never handles card data: a checkout session is created per
// purchase attempt and the buyer is redirected to the gateway's hosted page.
// Sessions are not persisted locally.
package payments

import (
	"context"
	"fmt"
)

// CheckoutItem is the single line item a session is created for.
type CheckoutItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64 // minor units
}

// SessionRequest parameterizes a hosted checkout session.
type SessionRequest struct {
	Item       CheckoutItem
	SuccessURL string
	CancelURL  string
}

// Session is the gateway's hosted transaction handle.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GatewayError is any failure reaching or being rejected by the gateway.
// It is reported to the user; ledger state is never mutated on this path.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("payments: gateway error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payments: gateway unreachable: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway creates hosted checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}
