// Package routes registers the storefront's HTTP routes and their guards.
package routes

import (
	"github.com/gamestorehq/gamestore/app/controllers"
	"github.com/gamestorehq/gamestore/app/gate"
	"github.com/gamestorehq/gamestore/pkg/router"
)

const loginToAddNotice = "You need to login or register to add games to the cart."

// Controllers bundles the wired-up controllers for route registration.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
}

// RegisterWeb wires every page route. Guard policy:
//   - browsing, auth pages, and the checkout redirect targets the gateway
//     calls back are reachable per route notes below
//   - cart pages require a signed-in user; cart-add explains itself with a
//     flash notice instead of a bare redirect
//   - catalog management is admin-only and fails hard with 403
func RegisterWeb(r *router.Router, c Controllers) {
	r.Get("/", "catalog.index", c.Catalog.Index)

	r.Get("/register", "auth.register.show", c.Auth.ShowRegister)
	r.Post("/register", "auth.register", c.Auth.Register)
	r.Get("/login", "auth.login.show", c.Auth.ShowLogin)
	r.Post("/login", "auth.login", c.Auth.Login)
	r.Get("/logout", "auth.logout", c.Auth.Logout)

	r.Get("/cart", "cart.show", gate.RequireUser(c.Cart.Show))
	r.Get("/cart-add/{gameID}", "cart.add", gate.RequireUserFlash(loginToAddNotice, c.Cart.Add))
	r.Post("/cart-add/{gameID}", "", gate.RequireUserFlash(loginToAddNotice, c.Cart.Add))
	r.Get("/delete/{entryID}", "cart.delete", gate.RequireUser(c.Cart.Delete))

	r.Get("/add", "catalog.add.show", gate.RequireAdmin(c.Catalog.ShowAdd))
	r.Post("/add", "catalog.add", gate.RequireAdmin(c.Catalog.Add))

	// Session creation stays public: the buy button is only rendered on the
	// cart page, but the entry id is the whole input either way.
	r.Get("/create-checkout-session/{entryID}", "checkout.create", c.Checkout.Create)
	r.Post("/create-checkout-session/{entryID}", "", c.Checkout.Create)
	r.Get("/success/{entryID}", "checkout.success", gate.RequireUser(c.Checkout.Success))
	r.Get("/cancel", "checkout.cancel", gate.RequireUser(c.Checkout.Cancel))
}
