package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/api/routes"
	"github.com/tahmidr/matrimony-backend/internal/admin"
	"github.com/tahmidr/matrimony-backend/internal/auth"
	"github.com/tahmidr/matrimony-backend/internal/biodatas"
	"github.com/tahmidr/matrimony-backend/internal/contacts"
	"github.com/tahmidr/matrimony-backend/internal/favourites"
	"github.com/tahmidr/matrimony-backend/internal/users"
	"github.com/tahmidr/matrimony-backend/pkg/auth/session"
	"github.com/tahmidr/matrimony-backend/pkg/config"
	"github.com/tahmidr/matrimony-backend/pkg/db"
	"github.com/tahmidr/matrimony-backend/pkg/logger"
	"github.com/tahmidr/matrimony-backend/pkg/metrics"
	"github.com/tahmidr/matrimony-backend/pkg/migrate"
	"github.com/tahmidr/matrimony-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	biodatasRepo := biodatas.NewRepository(dbClient.DB())
	favouritesRepo := favourites.NewRepository(dbClient.DB())
	contactsRepo := contacts.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		GoogleVerifier: auth.NewGoogleVerifier(cfg.Google),
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{Repo: usersRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	biodataService, err := biodatas.NewService(biodatas.ServiceParams{
		Repo:     biodatasRepo,
		TxRunner: dbClient,
		RepoFactory: func(tx *gorm.DB) *biodatas.Repository {
			return biodatas.NewRepository(tx)
		},
		Contacts:     contactsRepo,
		DefaultLimit: cfg.Listing.DefaultLimit,
		MaxLimit:     cfg.Listing.MaxLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create biodatas service", err)
		os.Exit(1)
	}

	favouriteService, err := favourites.NewService(favourites.ServiceParams{
		Repo:     favouritesRepo,
		Biodatas: biodatasRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favourites service", err)
		os.Exit(1)
	}

	contactsService, err := contacts.NewService(contacts.ServiceParams{
		Repo:     contactsRepo,
		Biodatas: biodatasRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create contacts service", err)
		os.Exit(1)
	}

	overviewService, err := admin.NewOverviewService(admin.OverviewParams{
		Biodatas: biodatasRepo,
		Users:    usersRepo,
		Contacts: contactsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create overview service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		SessionManager:  sessionManager,
		AuthService:     authService,
		RegisterService: registerService,
		UsersService:    usersService,
		BiodataService:  biodataService,
		FavouriteSvc:    favouriteService,
		ContactsSvc:     contactsService,
		OverviewSvc:     overviewService,
		HTTPMetrics:     httpMetrics,
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
