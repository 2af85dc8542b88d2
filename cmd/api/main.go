// @title                       SB Works Marketplace API
// @version                     1.0
// @description                 Freelance marketplace: accounts, freelancer profiles, projects, companies and chat.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/api"
	"github.com/sbworks/marketplace/internal/api/handler"
	"github.com/sbworks/marketplace/internal/chat"
	"github.com/sbworks/marketplace/internal/core/ports"
	"github.com/sbworks/marketplace/internal/core/service"
	"github.com/sbworks/marketplace/internal/infrastructure/config"
	mongodb "github.com/sbworks/marketplace/internal/infrastructure/db/mongo"
	"github.com/sbworks/marketplace/internal/infrastructure/db/postgres"
	redisstore "github.com/sbworks/marketplace/internal/infrastructure/db/redis"
	"github.com/sbworks/marketplace/internal/infrastructure/messaging"
	"github.com/sbworks/marketplace/internal/infrastructure/messaging/rabbitmq"
	"github.com/sbworks/marketplace/internal/infrastructure/queue"
	"github.com/sbworks/marketplace/internal/infrastructure/security"
	"github.com/sbworks/marketplace/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace-api",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	checks := map[string]handler.Check{
		"mongodb": mongodb.Pinger(mongoClient),
		"redis":   redisstore.Pinger(rdb),
	}

	var companyRepo ports.CompanyRepository
	if cfg.Companies.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.Companies.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo := postgres.NewCompanyRepository(pool)
		companyRepo = repo
		checks["postgres"] = repo.Ping
	} else {
		log.Warn().Msg("COMPANIES_DATABASE_URL not set, company directory disabled")
	}

	// --- Events ---
	var sink ports.EventPublisher = messaging.NewLogPublisher(log)
	if cfg.Events.AMQPURL != "" {
		pub, err := rabbitmq.NewPublisher(ctx, cfg.Events.AMQPURL, rabbitmq.DefaultExchange, log)
		if err != nil {
			return err
		}
		defer pub.Close()
		sink = pub
		checks["rabbitmq"] = pub.Ping
	}
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, sink, log)
	dispatcher.Start()

	// --- Core ---
	users := mongodb.NewUserRepository(db)
	profiles := mongodb.NewFreelancerRepository(db)
	projects := mongodb.NewProjectRepository(db)
	tx := mongodb.NewTransactor(mongoClient, cfg.Mongo.Transactions)
	tokens := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessionStore := redisstore.NewSessionStore(rdb)

	authService := service.NewAuthService(users, profiles, tx, tokens, sessionStore, dispatcher, log)
	services := api.Services{
		Auth:      authService,
		Profiles:  service.NewProfileService(profiles, log),
		Projects:  service.NewProjectService(projects, profiles, tx, dispatcher, log),
		Companies: service.NewCompanyService(companyRepo),
	}

	// --- Chat ---
	hub := chat.NewHub(log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	e := api.NewRouter(services, api.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		Limiter:        redisstore.NewRateLimiter(rdb, "ratelimit", cfg.Auth.RateLimitPerMinute, time.Minute),
		Chat:           chat.NewHandler(hub, authService, cfg.AllowedOrigins(), log),
		Readiness:      checks,
	}, log)

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	return shutdown(e, stopHub, dispatcher, log)
}

func shutdown(e *echo.Echo, stopHub context.CancelFunc, d *queue.Dispatcher, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := e.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	stopHub()
	if err := d.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain events: %w", err))
	}

	log.Info().Msg("server stopped")
	return errors.Join(errs...)
}
