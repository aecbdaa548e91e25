package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
)

// In-memory stores standing in for the gorm repositories. They mimic the
// repository contract, including gorm.ErrRecordNotFound on misses.

type fakeUserStore struct {
	users  map[uint]models.User
	nextID uint
	err    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]models.User{}, nextID: 1}
}

func (f *fakeUserStore) FindByEmail(email string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByID(id uint) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(user *models.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

type fakeGameStore struct {
	games  map[uint]models.Game
	nextID uint
}

func newFakeGameStore(games ...models.Game) *fakeGameStore {
	f := &fakeGameStore{games: map[uint]models.Game{}, nextID: 1}
	for _, g := range games {
		g := g
		f.Create(&g)
	}
	return f
}

func (f *fakeGameStore) All() ([]models.Game, error) {
	out := make([]models.Game, 0, len(f.games))
	for id := uint(1); id < f.nextID; id++ {
		if g, ok := f.games[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGameStore) FindByID(id uint) (models.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return models.Game{}, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeGameStore) Create(game *models.Game) error {
	game.ID = f.nextID
	f.nextID++
	f.games[game.ID] = *game
	return nil
}

type fakeCartStore struct {
	entries map[uint]models.CartEntry
	nextID  uint
	err     error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{entries: map[uint]models.CartEntry{}, nextID: 1}
}

func (f *fakeCartStore) Create(entry *models.CartEntry) error {
	if f.err != nil {
		return f.err
	}
	entry.ID = f.nextID
	f.nextID++
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeCartStore) All() ([]models.CartEntry, error) {
	out := make([]models.CartEntry, 0, len(f.entries))
	for id := uint(1); id < f.nextID; id++ {
		if e, ok := f.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCartStore) AllForUser(userID uint) ([]models.CartEntry, error) {
	var out []models.CartEntry
	for id := uint(1); id < f.nextID; id++ {
		if e, ok := f.entries[id]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCartStore) FindByID(id uint) (models.CartEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return models.CartEntry{}, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeCartStore) Delete(id uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.entries[id]; !ok {
		return 0, nil
	}
	delete(f.entries, id)
	return 1, nil
}

var errStoreDown = errors.New("store down")
