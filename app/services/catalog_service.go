package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
)

// CatalogService lists and creates catalog items.
type CatalogService struct {
	games GameStore
}

func NewCatalogService(games GameStore) *CatalogService {
	return &CatalogService{games: games}
}

// List returns the full catalog.
func (s *CatalogService) List() ([]models.Game, error) {
	return s.games.All()
}

// Find returns one catalog item, or ErrNotFound.
func (s *CatalogService) Find(id uint) (models.Game, error) {
	game, err := s.games.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Game{}, ErrNotFound
	}
	return game, err
}

// Add creates a catalog item. The price format is enforced here, at
// creation time, so checkout can rely on stored prices parsing cleanly.
func (s *CatalogService) Add(name, price, imageURL string) (models.Game, error) {
	if _, err := models.PriceMinorUnits(price); err != nil {
		return models.Game{}, err
	}

	game := models.Game{Name: name, Price: price, ImageURL: imageURL}
	if err := s.games.Create(&game); err != nil {
		return models.Game{}, fmt.Errorf("catalog: create: %w", err)
	}

	return game, nil
}
