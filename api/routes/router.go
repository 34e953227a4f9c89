package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrgrifes/atelier-backend/api/controllers"
	"github.com/hrgrifes/atelier-backend/api/middleware"
	authsvc "github.com/hrgrifes/atelier-backend/internal/auth"
	cartsvc "github.com/hrgrifes/atelier-backend/internal/cart"
	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/internal/transfer"
	"github.com/hrgrifes/atelier-backend/pkg/auth/session"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	"github.com/hrgrifes/atelier-backend/pkg/db"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
	"github.com/hrgrifes/atelier-backend/pkg/redis"
)

// Deps bundles everything the router wires together. cmd/api builds one after
// boot; router tests build a lighter one with fakes.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.Checker

	Auth      *authsvc.Service
	Content   content.Service
	Scheduler *content.Scheduler
	Cart      *cartsvc.Service
	Transfer  *transfer.Gateway

	Metrics prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisPing db.Pinger
	if deps.Redis != nil {
		redisPing = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPing))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
	)

	authed := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	editing := middleware.RequireEditMode(logg)

	login := controllers.AuthLogin(deps.Auth, logg)
	r.Route("/api/v1/auth", func(r chi.Router) {
		if deps.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
			r.Get("/session", controllers.AuthSession(deps.Auth, logg))
			r.Put("/session/admin-mode", controllers.AuthSetAdminMode(deps.Auth, logg))
		})
	})

	r.Route("/api/v1/content", func(r chi.Router) {
		r.Get("/", controllers.ContentGet(deps.Content, logg))
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/save-status", controllers.ContentSaveStatus(deps.Scheduler, logg))
			r.Group(func(r chi.Router) {
				r.Use(editing)
				r.Put("/{section}/fields/{key}", controllers.ContentUpdateField(deps.Content, logg))
				r.Put("/{section}/items/{itemID}/fields/{field}", controllers.ContentUpdateItemField(deps.Content, logg))
				r.Put("/{section}/items", controllers.ContentReorderItems(deps.Content, logg))
				r.Post("/{section}/items", controllers.ContentAddItem(deps.Content, logg))
				r.Post("/reset", controllers.ContentReset(deps.Content, logg))
			})
		})
	})

	r.Route("/api/v1/transfer", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/export", controllers.TransferExport(deps.Transfer, logg))
			r.With(editing).Post("/import", controllers.TransferImport(deps.Transfer, logg))
		})
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.CartGet(deps.Cart, logg))
		r.Post("/items", controllers.CartAdd(deps.Cart, logg))
		r.Delete("/items/{index}", controllers.CartRemove(deps.Cart, logg))
		r.Delete("/", controllers.CartClear(deps.Cart, logg))
		r.Put("/state", controllers.CartSetState(deps.Cart, logg))
		r.Post("/checkout", controllers.CartCheckout(cfg.Checkout, deps.Cart, logg))
	})

	return r
}
