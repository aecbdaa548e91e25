// Package services holds the application's business rules. Each service
// accepts store interfaces so tests can substitute in-memory fakes, and the
// gorm-backed repositories satisfy them in production.
package services

import (
	"errors"

	"github.com/gamestorehq/gamestore/app/models"
)

// Failures the controllers translate into pages or redirects. Anything else
// bubbling out of a service is unexpected and becomes a 500.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownEmail   = errors.New("unknown email")
	ErrWrongPassword  = errors.New("wrong password")
)

// UserStore is the identity store surface consumed by AuthService.
type UserStore interface {
	FindByEmail(email string) (models.User, error)
	FindByID(id uint) (models.User, error)
	Create(user *models.User) error
}

// GameStore is the catalog store surface.
type GameStore interface {
	All() ([]models.Game, error)
	FindByID(id uint) (models.Game, error)
	Create(game *models.Game) error
}

// CartStore is the cart ledger surface.
type CartStore interface {
	Create(entry *models.CartEntry) error
	All() ([]models.CartEntry, error)
	AllForUser(userID uint) ([]models.CartEntry, error)
	FindByID(id uint) (models.CartEntry, error)
	Delete(id uint) (int64, error)
}
