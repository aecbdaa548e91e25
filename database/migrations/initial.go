// Package migrations holds the schema migrations. Each one registers itself
// from init(), so importing this package (the CLI does, blank-imported) is
// enough to make them runnable.
package migrations

import (
	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/pkg/migration"
)

func init() {
	migration.Register("20260815000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260815000001_create_games_table", &CreateGamesTable{})
	migration.Register("20260815000002_create_cart_entries_table", &CreateCartEntriesTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

type CreateGamesTable struct{}

func (m *CreateGamesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Game{})
}

func (m *CreateGamesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("games")
}

type CreateCartEntriesTable struct{}

func (m *CreateCartEntriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartEntry{})
}

func (m *CreateCartEntriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_entries")
}
