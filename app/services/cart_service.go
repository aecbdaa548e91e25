package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/pkg/metrics"
)

// CartService owns the cart ledger.
type CartService struct {
	games GameStore
	carts CartStore

	// scopedToUser switches the cart view from the historical global
	// listing to a per-user one. The global listing is the original
	// behavior and stays the default; see DESIGN.md.
	scopedToUser bool
}

func NewCartService(games GameStore, carts CartStore, scopedToUser bool) *CartService {
	return &CartService{games: games, carts: carts, scopedToUser: scopedToUser}
}

// Add snapshots the game's display data into a new cart entry for userID.
// A missing game is ErrNotFound. Adding the same game twice is allowed and
// yields two independent entries, each snapshotted at its own add time.
func (s *CartService) Add(userID, gameID uint) (models.CartEntry, error) {
	game, err := s.games.FindByID(gameID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartEntry{}, ErrNotFound
	}
	if err != nil {
		return models.CartEntry{}, fmt.Errorf("cart: lookup game: %w", err)
	}

	entry := models.CartEntry{
		UserID:   userID,
		GameID:   game.ID,
		Name:     game.Name,
		Price:    game.Price,
		ImageURL: game.ImageURL,
	}
	if err := s.carts.Create(&entry); err != nil {
		return models.CartEntry{}, fmt.Errorf("cart: create entry: %w", err)
	}

	metrics.CartEntries.WithLabelValues("added").Inc()
	return entry, nil
}

// ListForView returns the entries shown on the cart page: everything in the
// ledger, or just userID's entries when scoping is enabled.
func (s *CartService) ListForView(userID uint) ([]models.CartEntry, error) {
	if s.scopedToUser {
		return s.carts.AllForUser(userID)
	}
	return s.carts.All()
}

// Get returns one entry, or ErrNotFound.
func (s *CartService) Get(entryID uint) (models.CartEntry, error) {
	entry, err := s.carts.FindByID(entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartEntry{}, ErrNotFound
	}
	if err != nil {
		return models.CartEntry{}, fmt.Errorf("cart: lookup entry: %w", err)
	}
	return entry, nil
}

// Remove deletes an entry. Deleting an entry that is already gone returns
// ErrNotFound; callers treat that as a harmless repeat.
func (s *CartService) Remove(entryID uint) error {
	rows, err := s.carts.Delete(entryID)
	if err != nil {
		return fmt.Errorf("cart: delete entry: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	metrics.CartEntries.WithLabelValues("removed").Inc()
	return nil
}
