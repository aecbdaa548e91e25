package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorehq/gamestore/app/models"
)

func TestCatalogAddValidatesPrice(t *testing.T) {
	games := newFakeGameStore()
	svc := NewCatalogService(games)

	_, err := svc.Add("Portal", "$20", "")
	require.NoError(t, err)

	for _, price := range []string{"20", "$5.50", "", "$-3"} {
		_, err := svc.Add("Bad", price, "")
		assert.ErrorIs(t, err, models.ErrBadPrice, "price %q", price)
	}

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1, "only the valid item was created")
}

func TestCatalogFind(t *testing.T) {
	games := newFakeGameStore(models.Game{Name: "Portal", Price: "$20"})
	svc := NewCatalogService(games)

	game, err := svc.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "Portal", game.Name)

	_, err = svc.Find(99)
	assert.ErrorIs(t, err, ErrNotFound)
}
