package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/controllers"
	"github.com/gamestorehq/gamestore/app/gate"
	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/app/routes"
	"github.com/gamestorehq/gamestore/app/services"
	"github.com/gamestorehq/gamestore/config"
	"github.com/gamestorehq/gamestore/pkg/auth"
	"github.com/gamestorehq/gamestore/pkg/payments"
	"github.com/gamestorehq/gamestore/pkg/router"
)

// ---- in-memory stores ----

type memUsers struct {
	users  map[uint]models.User
	nextID uint
}

func (m *memUsers) FindByEmail(email string) (models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memUsers) FindByID(id uint) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memUsers) Create(user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = *user
	return nil
}

type memGames struct {
	games  map[uint]models.Game
	nextID uint
}

func (m *memGames) All() ([]models.Game, error) {
	var out []models.Game
	for id := uint(1); id < m.nextID; id++ {
		if g, ok := m.games[id]; ok {
			out = append(out, g)
		}
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

func (m *memGames) Create(game *models.Game) error {
	game.ID = m.nextID
	m.nextID++
	m.games[game.ID] = *game
	return nil
}

type memCarts struct {
	entries map[uint]models.CartEntry
	nextID  uint
}

func (m *memCarts) Create(entry *models.CartEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memCarts) All() ([]models.CartEntry, error) {
	var out []models.CartEntry
	for id := uint(1); id < m.nextID; id++ {
		if e, ok := m.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memCarts) AllForUser(userID uint) ([]models.CartEntry, error) {
	var out []models.CartEntry
	for id := uint(1); id < m.nextID; id++ {
		if e, ok := m.entries[id]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memCarts) FindByID(id uint) (models.CartEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return models.CartEntry{}, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (m *memCarts) Delete(id uint) (int64, error) {
	if _, ok := m.entries[id]; !ok {
		return 0, nil
	}
	delete(m.entries, id)
	return 1, nil
}

type stubGateway struct {
	lastReq payments.SessionRequest
	session *payments.Session
	err     error
}

func (s *stubGateway) CreateCheckoutSession(_ context.Context, req payments.SessionRequest) (*payments.Session, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

// ---- harness ----

type testApp struct {
	handler http.Handler
	users   *memUsers
	games   *memGames
	carts   *memCarts
	gateway *stubGateway
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	config.Set("SESSION_SECRET", "test-secret")

	users := &memUsers{users: map[uint]models.User{}, nextID: 1}
	games := &memGames{games: map[uint]models.Game{}, nextID: 1}
	carts := &memCarts{entries: map[uint]models.CartEntry{}, nextID: 1}
	gateway := &stubGateway{session: &payments.Session{ID: "cs_test", URL: "https://pay.example/cs_test"}}

	r := router.New()
	r.Use(gate.NewGate(users).Identify)
	routes.RegisterWeb(r, routes.Controllers{
		Auth:     controllers.NewAuthController(services.NewAuthService(users)),
		Catalog:  controllers.NewCatalogController(services.NewCatalogService(games)),
		Cart:     controllers.NewCartController(services.NewCartService(games, carts, false)),
		Checkout: controllers.NewCheckoutController(services.NewCheckoutService(carts, gateway, "http://shop.local")),
	})

	return &testApp{handler: r.Handler(), users: users, games: games, carts: carts, gateway: gateway}
}

func (a *testApp) seedUser(t *testing.T, name, email string, admin bool) models.User {
	t.Helper()
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	u := models.User{Name: name, Email: email, Password: hash, Admin: admin}
	require.NoError(t, a.users.Create(&u))
	return u
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if as != nil {
		token, err := auth.SignSession(as.ID)
		require.NoError(t, err)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func flashValue(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "gamestore_flash" && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// ---- tests ----

func TestIndexListsCatalog(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.games.Create(&models.Game{Name: "Portal", Price: "$20"}))

	w := app.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Portal")
	assert.Contains(t, w.Body.String(), "$20")
}

func TestRegisterSignsInAndRedirectsHome(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/register", url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"}, "password": {"hunter2"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var sessionSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			sessionSet = true
		}
	}
	assert.True(t, sessionSet, "registration signs the new user in")
}

func TestRegisterDuplicateRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "Ada", "ada@example.com", false)

	w := app.do(t, http.MethodPost, "/register", url.Values{
		"name": {"Ada Again"}, "email": {"ada@example.com"}, "password": {"hunter2"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotEmpty(t, flashValue(t, w), "duplicate email explains itself via flash")
	assert.Len(t, app.users.users, 1, "no second account created")
}

func TestLoginFailuresReRenderWithInlineError(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "Ada", "ada@example.com", false)

	unknown := app.do(t, http.MethodPost, "/login", url.Values{
		"email": {"nobody@example.com"}, "password": {"hunter2"},
	}, nil)
	assert.Equal(t, http.StatusOK, unknown.Code, "failure re-renders the page, no redirect")
	assert.Contains(t, unknown.Body.String(), "That email does not exist")
	assert.Contains(t, unknown.Body.String(), "nobody@example.com",
		"submitted email survives the re-render")

	wrong := app.do(t, http.MethodPost, "/login", url.Values{
		"email": {"ada@example.com"}, "password": {"nope"},
	}, nil)
	assert.Equal(t, http.StatusOK, wrong.Code)
	assert.Contains(t, wrong.Body.String(), "Password incorrect")
	assert.NotContains(t, wrong.Body.String(), "That email does not exist",
		"unknown-email and wrong-password notices stay distinguishable")
}

func TestCartRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/cart", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestCartAddAnonymousGetsFlashRedirect(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.games.Create(&models.Game{Name: "Portal", Price: "$20"}))

	w := app.do(t, http.MethodPost, "/cart-add/1", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotEmpty(t, flashValue(t, w))
	assert.Empty(t, app.carts.entries, "nothing added for anonymous visitors")
}

func TestCartAddSignedIn(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "Ada", "ada@example.com", false)
	require.NoError(t, app.games.Create(&models.Game{Name: "Portal", Price: "$20", ImageURL: "/storage/p.jpg"}))

	w := app.do(t, http.MethodPost, "/cart-add/1", nil, &user)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	require.Len(t, app.carts.entries, 1)
	entry := app.carts.entries[1]
	assert.Equal(t, user.ID, entry.UserID)
	assert.Equal(t, "Portal", entry.Name)
	assert.Equal(t, "$20", entry.Price)
}

func TestAddGameIsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "Ada", "ada@example.com", false)
	admin := app.seedUser(t, "Root", "root@example.com", true)

	t.Run("anonymous forbidden", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/add", nil, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ordinary user forbidden", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/add", url.Values{
			"name": {"Portal"}, "price": {"$20"},
		}, &user)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, app.games.games)
	})

	t.Run("admin creates", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/add", url.Values{
			"name": {"Portal"}, "price": {"$20"}, "img_url": {"https://img.example.com/p.jpg"},
		}, &admin)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Len(t, app.games.games, 1)
	})

	t.Run("admin rejected on fractional price", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/add", url.Values{
			"name": {"Half"}, "price": {"$5.50"},
		}, &admin)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Len(t, app.games.games, 1, "invalid price creates nothing")
	})
}

func TestCheckoutRedirectsToGateway(t *testing.T) {
	app := newTestApp(t)
	entry := models.CartEntry{UserID: 1, GameID: 1, Name: "Portal", Price: "$20"}
	require.NoError(t, app.carts.Create(&entry))

	w := app.do(t, http.MethodPost, "/create-checkout-session/1", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://pay.example/cs_test", w.Header().Get("Location"))
	assert.Equal(t, int64(2000), app.gateway.lastReq.Item.UnitAmount)

	_, ok := app.carts.entries[1]
	assert.True(t, ok, "entry stays until the buyer returns")
}

func TestCheckoutGatewayFailureShowsErrorPage(t *testing.T) {
	app := newTestApp(t)
	entry := models.CartEntry{UserID: 1, GameID: 1, Name: "Portal", Price: "$20"}
	require.NoError(t, app.carts.Create(&entry))
	app.gateway.err = &payments.GatewayError{StatusCode: 500, Message: "boom"}

	w := app.do(t, http.MethodPost, "/create-checkout-session/1", nil, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	_, ok := app.carts.entries[1]
	assert.True(t, ok, "gateway failure leaves the ledger untouched")
}

func TestSuccessSettlesOnceThenReplaysQuietly(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "Ada", "ada@example.com", false)
	entry := models.CartEntry{UserID: user.ID, GameID: 1, Name: "Portal", Price: "$20"}
	require.NoError(t, app.carts.Create(&entry))

	first := app.do(t, http.MethodGet, "/success/1", nil, &user)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Portal")
	assert.Empty(t, app.carts.entries, "settled entry leaves the ledger")

	replay := app.do(t, http.MethodGet, "/success/1", nil, &user)
	assert.Equal(t, http.StatusOK, replay.Code)
	assert.NotContains(t, replay.Body.String(), "Portal")
}

func TestSuccessRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	entry := models.CartEntry{UserID: 1, GameID: 1, Name: "Portal", Price: "$20"}
	require.NoError(t, app.carts.Create(&entry))

	w := app.do(t, http.MethodGet, "/success/1", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, app.carts.entries, 1, "anonymous visit settles nothing")
}

func TestDeleteEntryIsOwnerAgnosticNoOpOnRepeat(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "Ada", "ada@example.com", false)
	entry := models.CartEntry{UserID: user.ID, GameID: 1, Name: "Portal", Price: "$20"}
	require.NoError(t, app.carts.Create(&entry))

	first := app.do(t, http.MethodGet, "/delete/1", nil, &user)
	assert.Equal(t, http.StatusSeeOther, first.Code)
	assert.Equal(t, "/cart", first.Header().Get("Location"))
	assert.Empty(t, app.carts.entries)

	repeat := app.do(t, http.MethodGet, "/delete/1", nil, &user)
	assert.Equal(t, http.StatusSeeOther, repeat.Code)
	assert.Equal(t, "/cart", repeat.Header().Get("Location"))
}

func TestLoginLogoutLoginCycle(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "Ada", "ada@example.com", false)
	creds := url.Values{"email": {"ada@example.com"}, "password": {"hunter2"}}

	sessionOf := func(w *httptest.ResponseRecorder) string {
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.CookieName && c.MaxAge > 0 {
				return c.Value
			}
		}
		return ""
	}

	first := app.do(t, http.MethodPost, "/login", creds, nil)
	require.Equal(t, http.StatusSeeOther, first.Code)
	assert.Equal(t, "/", first.Header().Get("Location"))
	require.NotEmpty(t, sessionOf(first))

	out := app.do(t, http.MethodGet, "/logout", nil, &user)
	require.Equal(t, http.StatusSeeOther, out.Code)

	second := app.do(t, http.MethodPost, "/login", creds, nil)
	require.Equal(t, http.StatusSeeOther, second.Code)
	assert.Equal(t, "/", second.Header().Get("Location"))
	require.NotEmpty(t, sessionOf(second))

	// the fresh session is fully usable after the cycle
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sessionOf(second)})
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "Ada", "ada@example.com", false)

	w := app.do(t, http.MethodGet, "/logout", nil, &user)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
