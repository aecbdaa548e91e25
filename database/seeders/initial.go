package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/config"
	"github.com/gamestorehq/gamestore/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("sample_catalog", SeedSampleCatalog)
}

// SeedAdminUser provisions the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Admin privilege is only ever granted here; there is no
// in-app path to it. Skips silently when the config is absent or the
// account already exists.
func SeedAdminUser(db *gorm.DB) error {
	email, password := config.AdminEmail(), config.AdminPassword()
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if !existing.Admin {
			return db.Model(&existing).Update("admin", true).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "Store Admin",
		Email:    email,
		Password: hash,
		Admin:    true,
	}).Error
}

// SeedSampleCatalog inserts a starter catalog on an empty store.
func SeedSampleCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Game{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	games := []models.Game{
		{Name: "Cyber Drift", Price: "$40", ImageURL: "https://images.example.com/cyber-drift.jpg"},
		{Name: "Dungeon Depths", Price: "$25", ImageURL: "https://images.example.com/dungeon-depths.jpg"},
		{Name: "Starlane Tycoon", Price: "$30", ImageURL: "https://images.example.com/starlane-tycoon.jpg"},
		{Name: "Pixel Rally", Price: "$15", ImageURL: "https://images.example.com/pixel-rally.jpg"},
	}
	return db.Create(&games).Error
}
