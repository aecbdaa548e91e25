package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gamestorehq/gamestore/app/gate"
	"github.com/gamestorehq/gamestore/app/services"
	"github.com/gamestorehq/gamestore/app/views"
	"github.com/gamestorehq/gamestore/pkg/logger"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// pathID parses a numeric URL parameter; 0 means absent or malformed.
func pathID(r *http.Request, name string) uint {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// Show renders the cart page for the signed-in user.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	user, _ := gate.CurrentUser(r.Context())

	entries, err := c.service.ListForView(user.ID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list cart", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not load your cart.")
		return
	}
	views.Render(w, r, http.StatusOK, "cart", entries)
}

// Add puts a catalog item in the cart and returns to the storefront.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	user, _ := gate.CurrentUser(r.Context())

	_, err := c.service.Add(user.ID, pathID(r, "gameID"))
	if errors.Is(err, services.ErrNotFound) {
		views.RenderError(w, r, http.StatusNotFound, "That game is not in the catalog.")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart add", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not add the game to your cart.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes an entry. A repeat delete of an already-removed entry is
// treated as done and redirects the same way.
func (c *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.service.Remove(pathID(r, "entryID"))
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		logger.WithCtx(r.Context()).Error("cart delete", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not remove the item.")
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
