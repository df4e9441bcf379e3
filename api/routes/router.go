package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tahmidr/matrimony-backend/api/controllers"
	"github.com/tahmidr/matrimony-backend/api/middleware"
	"github.com/tahmidr/matrimony-backend/internal/admin"
	"github.com/tahmidr/matrimony-backend/internal/auth"
	"github.com/tahmidr/matrimony-backend/internal/biodatas"
	"github.com/tahmidr/matrimony-backend/internal/contacts"
	"github.com/tahmidr/matrimony-backend/internal/favourites"
	"github.com/tahmidr/matrimony-backend/internal/users"
	"github.com/tahmidr/matrimony-backend/pkg/auth/session"
	"github.com/tahmidr/matrimony-backend/pkg/config"
	"github.com/tahmidr/matrimony-backend/pkg/db"
	"github.com/tahmidr/matrimony-backend/pkg/enums"
	"github.com/tahmidr/matrimony-backend/pkg/logger"
	"github.com/tahmidr/matrimony-backend/pkg/metrics"
	"github.com/tahmidr/matrimony-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *redis.Client

	SessionManager  sessionManager
	AuthService     auth.Service
	RegisterService auth.RegisterService
	UsersService    users.Service
	BiodataService  biodatas.Service
	FavouriteSvc    favourites.Service
	ContactsSvc     contacts.Service
	OverviewSvc     admin.OverviewService

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	// Legacy token exchange kept for resolver clients.
	r.Post("/jwt", controllers.AuthTokenExchange(p.AuthService, logg))

	r.Route("/users", func(r chi.Router) {
		r.Post("/", controllers.UserSave(p.UsersService, logg))
		r.Get("/{email}", controllers.UserGetByEmail(p.UsersService, logg))
	})

	r.Route("/biodatas", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, p.SessionManager, logg))
		r.Get("/", controllers.BiodataList(p.BiodataService, logg))
		r.Get("/{id}", controllers.BiodataGetByID(p.BiodataService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/google", controllers.AuthGoogleLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(p.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))

		r.Route("/biodatas", func(r chi.Router) {
			r.Get("/user/{email}", controllers.BiodataGetByOwner(p.BiodataService, logg))
			r.Put("/user/{email}", controllers.BiodataUpsert(p.BiodataService, logg))
			r.Patch("/request-premium/{id}", controllers.BiodataRequestPremium(p.BiodataService, logg))
		})

		r.Route("/favourites", func(r chi.Router) {
			r.Get("/", controllers.FavouriteList(p.FavouriteSvc, logg))
			r.Post("/", controllers.FavouriteAdd(p.FavouriteSvc, logg))
			r.Delete("/{id}", controllers.FavouriteRemove(p.FavouriteSvc, logg))
		})

		r.Route("/contact-requests", func(r chi.Router) {
			r.Get("/", controllers.ContactRequestList(p.ContactsSvc, logg))
			r.Post("/", controllers.ContactRequestCreate(p.ContactsSvc, logg))
			r.Delete("/{id}", controllers.ContactRequestRemove(p.ContactsSvc, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
		r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

		r.Get("/overview", controllers.AdminOverview(p.OverviewSvc, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(p.UsersService, logg))
			r.Patch("/{email}/promote", controllers.AdminUserPromote(p.UsersService, logg))
		})

		r.Route("/premium-requests", func(r chi.Router) {
			r.Get("/", controllers.AdminPremiumRequestList(p.BiodataService, logg))
			r.Patch("/{id}/approve", controllers.AdminPremiumApprove(p.BiodataService, logg))
		})

		r.Route("/contact-requests", func(r chi.Router) {
			r.Get("/", controllers.AdminContactRequestList(p.ContactsSvc, logg))
			r.Patch("/{id}/approve", controllers.AdminContactRequestApprove(p.ContactsSvc, logg))
		})
	})

	return r
}
