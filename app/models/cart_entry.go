package models

import "gorm.io/gorm"

// CartEntry is one user's pending intent to purchase one game.
//
// Name, Price and ImageURL are a snapshot of the game at the moment the
// entry was added; they are write-once and never re-read from the catalog,
// so a later price change cannot alter an entry already in a cart.
//
// There is no separate order record: a completed purchase is represented by
// the absence of the entry afterwards.
type CartEntry struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	GameID   uint   `gorm:"not null;index" json:"game_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Price    string `gorm:"size:100;not null" json:"price"`
	ImageURL string `gorm:"size:250;not null" json:"img_url"`
}
