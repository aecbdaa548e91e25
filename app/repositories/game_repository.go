package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/pkg/cache"
)

const (
	gameListCacheKey = "gamestore:catalog:all"
	gameListCacheTTL = 5 * time.Minute
)

// GameRepository handles database operations for the catalog.
// The full listing is cached in Redis; the cache is dropped whenever a game
// is created. Items are immutable after creation, so there is no other
// invalidation path.
type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// All returns every catalog item, newest last.
func (r *GameRepository) All() ([]models.Game, error) {
	var games []models.Game
	if cache.Get(gameListCacheKey, &games) {
		return games, nil
	}

	if err := r.db.Order("id").Find(&games).Error; err != nil {
		return nil, err
	}

	_ = cache.Set(gameListCacheKey, games, gameListCacheTTL)
	return games, nil
}

// FindByID looks up a catalog item by primary key.
func (r *GameRepository) FindByID(id uint) (models.Game, error) {
	var game models.Game
	err := r.db.First(&game, id).Error
	return game, err
}

// Create persists a new catalog item and invalidates the listing cache.
func (r *GameRepository) Create(game *models.Game) error {
	if err := r.db.Create(game).Error; err != nil {
		return err
	}
	_ = cache.Del(gameListCacheKey)
	return nil
}
