package repositories

import (
	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
)

// CartRepository handles database operations for the cart ledger.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Create persists a new cart entry. The snapshot fields are set here and
// never updated afterwards.
func (r *CartRepository) Create(entry *models.CartEntry) error {
	return r.db.Create(entry).Error
}

// All returns every entry in the ledger, regardless of owner.
func (r *CartRepository) All() ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := r.db.Order("id").Find(&entries).Error
	return entries, err
}

// AllForUser returns the entries owned by one user.
func (r *CartRepository) AllForUser(userID uint) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&entries).Error
	return entries, err
}

// FindByID looks up an entry by primary key.
func (r *CartRepository) FindByID(id uint) (models.CartEntry, error) {
	var entry models.CartEntry
	err := r.db.First(&entry, id).Error
	return entry, err
}

// Delete removes an entry and reports how many rows were affected, so a
// repeated delete can be recognised as a no-op rather than an error.
func (r *CartRepository) Delete(id uint) (int64, error) {
	res := r.db.Unscoped().Delete(&models.CartEntry{}, id)
	return res.RowsAffected, res.Error
}
