// Package kernel assembles the HTTP handler: the global middleware stack,
// the operational endpoints, and the storefront routes.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/gamestorehq/gamestore/app/controllers"
	"github.com/gamestorehq/gamestore/app/gate"
	"github.com/gamestorehq/gamestore/app/repositories"
	"github.com/gamestorehq/gamestore/app/routes"
	"github.com/gamestorehq/gamestore/app/services"
	"github.com/gamestorehq/gamestore/config"
	"github.com/gamestorehq/gamestore/pkg/gql"
	"github.com/gamestorehq/gamestore/pkg/metrics"
	"github.com/gamestorehq/gamestore/pkg/middleware"
	"github.com/gamestorehq/gamestore/pkg/payments"
	"github.com/gamestorehq/gamestore/pkg/reqid"
	"github.com/gamestorehq/gamestore/pkg/router"
)

// NewHandler wires repositories, services, and controllers onto the router.
func NewHandler(db *gorm.DB, gateway payments.Gateway) (http.Handler, error) {
	users := repositories.NewUserRepository(db)
	games := repositories.NewGameRepository(db)
	carts := repositories.NewCartRepository(db)

	authSvc := services.NewAuthService(users)
	catalogSvc := services.NewCatalogService(games)
	cartSvc := services.NewCartService(games, carts, config.CartScopedToUser())
	checkoutSvc := services.NewCheckoutService(carts, gateway, config.BaseURL())

	g := gate.NewGate(users)

	r := router.New()

	// Global middleware, outermost first:
	//  metrics — total latency including everything below
	//  recovery — catch panics before they kill the connection
	//  request id, logger — every log line carries the request id
	//  identify — resolve the session cookie once per request
	//  cors, rate limit
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(g.Identify)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", healthz(db))

	schema, err := gql.NewSchema(catalogSvc)
	if err != nil {
		return nil, err
	}
	r.HandleFunc("/graphql", gql.Handler(schema))

	// Serve uploaded images back when they live on the local disk. With the
	// s3 driver the snapshot URLs point at the bucket instead.
	if config.StorageDisk() == "local" {
		fs := http.FileServer(http.Dir(config.StorageLocalRoot()))
		r.Mount("/storage", http.StripPrefix("/storage/", fs))
	}

	routes.RegisterWeb(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Catalog:  controllers.NewCatalogController(catalogSvc),
		Cart:     controllers.NewCartController(cartSvc),
		Checkout: controllers.NewCheckoutController(checkoutSvc),
	})

	return r.Handler(), nil
}

func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(r.Context()) != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}
}
