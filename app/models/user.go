package models

import "gorm.io/gorm"

// User is the identity record. Created by registration, never mutated by the
// core afterwards.
type User struct {
	gorm.Model
	Name     string `gorm:"size:100;not null"            json:"name"`
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"size:150;not null"            json:"-"` // bcrypt hash, never serialised
	Admin    bool   `gorm:"not null;default:false"       json:"admin"`
}
