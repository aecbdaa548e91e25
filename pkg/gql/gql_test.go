package gql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/app/services"
)

type memGames struct {
	games map[uint]models.Game
}

func (m *memGames) All() ([]models.Game, error) {
	out := make([]models.Game, 0, len(m.games))
	for id := uint(1); id <= uint(len(m.games)); id++ {
		out = append(out, m.games[id])
	}
	return out, nil
}

func (m *memGames) FindByID(id uint) (models.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return models.Game{}, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (m *memGames) Create(*models.Game) error { return nil }

func queryHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	games := &memGames{games: map[uint]models.Game{
		1: {Model: gorm.Model{ID: 1}, Name: "Portal", Price: "$20", ImageURL: "/storage/p.jpg"},
		2: {Model: gorm.Model{ID: 2}, Name: "Chess", Price: "$5"},
	}}
	schema, err := NewSchema(services.NewCatalogService(games))
	require.NoError(t, err)
	return Handler(schema)
}

func post(t *testing.T, h http.HandlerFunc, body string) map[string]any {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGamesQuery(t *testing.T) {
	h := queryHandler(t)

	out := post(t, h, `{"query":"{ games { id name price imageUrl } }"}`)
	require.Nil(t, out["errors"])

	data := out["data"].(map[string]any)
	games := data["games"].([]any)
	require.Len(t, games, 2)

	first := games[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Portal", first["name"])
	assert.Equal(t, "$20", first["price"])
	assert.Equal(t, "/storage/p.jpg", first["imageUrl"])
}

func TestGameByIDQuery(t *testing.T) {
	h := queryHandler(t)

	out := post(t, h, `{"query":"{ game(id: 2) { name price } }"}`)
	require.Nil(t, out["errors"])
	game := out["data"].(map[string]any)["game"].(map[string]any)
	assert.Equal(t, "Chess", game["name"])

	missing := post(t, h, `{"query":"{ game(id: 99) { name } }"}`)
	assert.Nil(t, missing["data"].(map[string]any)["game"], "missing id resolves to null")
}

func TestHandlerRejectsNonPost(t *testing.T) {
	h := queryHandler(t)
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
