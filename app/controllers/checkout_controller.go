package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamestorehq/gamestore/app/services"
	"github.com/gamestorehq/gamestore/app/views"
	"github.com/gamestorehq/gamestore/pkg/logger"
	"github.com/gamestorehq/gamestore/pkg/payments"
)

type CheckoutController struct {
	service *services.CheckoutService
}

func NewCheckoutController(service *services.CheckoutService) *CheckoutController {
	return &CheckoutController{service: service}
}

// Create opens a hosted checkout session for a cart entry and sends the
// buyer there with a 303, so a refresh of the redirect never re-posts.
func (c *CheckoutController) Create(w http.ResponseWriter, r *http.Request) {
	url, err := c.service.Initiate(r.Context(), pathID(r, "entryID"))
	if errors.Is(err, services.ErrNotFound) {
		views.RenderError(w, r, http.StatusNotFound, "That cart item no longer exists.")
		return
	}

	var ge *payments.GatewayError
	if errors.As(err, &ge) {
		logger.WithCtx(r.Context()).Error("checkout session",
			slog.Int("status", ge.StatusCode), slog.Any("error", ge))
		views.RenderError(w, r, http.StatusBadGateway,
			"The payment provider is unavailable right now, please try again.")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout session", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not start checkout.")
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Success settles the purchase: the entry leaves the ledger and its
// captured snapshot is shown once. A revisit after settling renders the
// confirmation without item details.
func (c *CheckoutController) Success(w http.ResponseWriter, r *http.Request) {
	entry, err := c.service.FinalizeSuccess(pathID(r, "entryID"))
	if errors.Is(err, services.ErrNotFound) {
		views.Render(w, r, http.StatusOK, "success", nil)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("finalize checkout", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not confirm your purchase.")
		return
	}

	views.Render(w, r, http.StatusOK, "success", entry)
}

// Cancel is where the gateway sends an abandoned checkout. Nothing changes.
func (c *CheckoutController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.service.Cancel()
	views.Render(w, r, http.StatusOK, "cancel", nil)
}
