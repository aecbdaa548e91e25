package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/pkg/metrics"
	"github.com/gamestorehq/gamestore/pkg/payments"
)

// CheckoutService drives the purchase flow: create a hosted session at the
// gateway, send the buyer there, and settle the cart entry when they come
// back. Sessions are never persisted locally.
type CheckoutService struct {
	carts   CartStore
	gateway payments.Gateway
	baseURL string
}

func NewCheckoutService(carts CartStore, gateway payments.Gateway, baseURL string) *CheckoutService {
	return &CheckoutService{carts: carts, gateway: gateway, baseURL: baseURL}
}

// Initiate creates a checkout session for one cart entry and returns the
// gateway's hosted page URL. The entry is untouched: it only leaves the
// ledger when the buyer lands back on the success route.
func (s *CheckoutService) Initiate(ctx context.Context, entryID uint) (string, error) {
	entry, err := s.carts.FindByID(entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("checkout: lookup entry: %w", err)
	}

	amount, err := models.PriceMinorUnits(entry.Price)
	if err != nil {
		return "", fmt.Errorf("checkout: entry %d: %w", entry.ID, err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payments.SessionRequest{
		Item: payments.CheckoutItem{
			Name:       entry.Name,
			ImageURL:   entry.ImageURL,
			UnitAmount: amount,
		},
		SuccessURL: fmt.Sprintf("%s/success/%d", s.baseURL, entry.ID),
		CancelURL:  fmt.Sprintf("%s/cancel", s.baseURL),
	})
	if err != nil {
		metrics.CheckoutEvents.WithLabelValues("gateway_error").Inc()
		return "", err
	}

	metrics.CheckoutEvents.WithLabelValues("initiated").Inc()
	return session.URL, nil
}

// FinalizeSuccess settles a purchase: the entry's display data is captured,
// then the entry is removed from the ledger. Revisiting the success URL
// after the entry is gone returns ErrNotFound, which callers render as a
// bare confirmation rather than a failure.
func (s *CheckoutService) FinalizeSuccess(entryID uint) (models.CartEntry, error) {
	entry, err := s.carts.FindByID(entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartEntry{}, ErrNotFound
	}
	if err != nil {
		return models.CartEntry{}, fmt.Errorf("checkout: lookup entry: %w", err)
	}

	rows, err := s.carts.Delete(entry.ID)
	if err != nil {
		return models.CartEntry{}, fmt.Errorf("checkout: settle entry: %w", err)
	}
	if rows == 0 {
		// lost a race with another finalize; treat as already settled
		return models.CartEntry{}, ErrNotFound
	}

	metrics.CheckoutEvents.WithLabelValues("completed").Inc()
	metrics.CartEntries.WithLabelValues("purchased").Inc()
	return entry, nil
}

// Cancel records an abandoned checkout. The ledger is untouched.
func (s *CheckoutService) Cancel() {
	metrics.CheckoutEvents.WithLabelValues("canceled").Inc()
}
