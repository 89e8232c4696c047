package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/cars-g/reporting-api/docs" // swagger docs

	"github.com/cars-g/reporting-api/internal/api"
	"github.com/cars-g/reporting-api/internal/api/metrics"
	"github.com/cars-g/reporting-api/internal/core/ports"
	"github.com/cars-g/reporting-api/internal/core/service"
	"github.com/cars-g/reporting-api/internal/infrastructure/config"
	mongostore "github.com/cars-g/reporting-api/internal/infrastructure/db/mongo"
	redisstore "github.com/cars-g/reporting-api/internal/infrastructure/db/redis"
	"github.com/cars-g/reporting-api/internal/infrastructure/identity"
	"github.com/cars-g/reporting-api/internal/infrastructure/scheduler"
	"github.com/cars-g/reporting-api/internal/infrastructure/storage"
	"github.com/cars-g/reporting-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title                       Cars-G Reporting API
// @version                     1.0
// @description                 Community incident reporting: reports, patrol workflow, points and support chat.
// @host                        localhost:3001
// @BasePath                    /
// @schemes                     http
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.ServiceName,
	})

	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure mongodb indexes")
	}

	// Redis backs the rate limiter and the job lock. Without it the API still
	// serves traffic, unthrottled.
	var (
		limiter ports.RateLimiter
		locker  scheduler.Locker
	)
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		limiter = redisstore.NewFixedWindowLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		locker = redisstore.NewLocker(rdb)
	}

	// --- Repositories ---
	credentialRepo := mongostore.NewCredentialRepository(db)
	userRepo := mongostore.NewUserRepository(db)
	reportRepo := mongostore.NewReportRepository(db)
	messageRepo := mongostore.NewMessageRepository(db)
	ledger := mongostore.NewPointsLedger(mongoClient, db)

	// --- Identity ---
	tokens := identity.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	// --- Services ---
	guard := service.NewAccessGuard(tokens, userRepo)
	authService := service.NewAuthService(credentialRepo, userRepo, tokens, logger.Component("auth"))
	reportService := service.NewReportService(reportRepo, userRepo, ledger, cfg.StrictLifecycle, logger.Component("reports"))
	userService := service.NewUserService(userRepo, reportRepo, ledger, logger.Component("users"))
	chatService := service.NewChatService(messageRepo, userRepo, logger.Component("chat"))
	reconcileService := service.NewReconcileService(userRepo, reportRepo, logger.Component("reconcile"))

	var uploads ports.UploadSigner
	if cfg.Cloudinary.Enabled() {
		signer, err := storage.NewCloudinarySigner(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Cloudinary.UploadPreset,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("configure cloudinary")
		}
		uploads = signer
	} else {
		log.Warn().Msg("cloudinary not configured, upload signing disabled")
	}

	// --- Background jobs ---
	jobs := scheduler.New(reconcileService, locker, metrics.ObserveDrift, logger.Component("scheduler"))
	if err := jobs.Start(cfg.ReconcileSchedule); err != nil {
		log.Fatal().Err(err).Msg("start scheduler")
	}

	// --- HTTP ---
	deps := api.Deps{
		ServiceName:  cfg.ServiceName,
		FrontendURLs: cfg.FrontendURLs,
		Log:          logger.Component("http"),
		Guard:        guard,
		Auth:         authService,
		Reports:      reportService,
		Users:        userService,
		Chat:         chatService,
		Uploads:      uploads,
		Limiter:      limiter,
		Mongo:        mongoClient,
		Redis:        rdb,
	}
	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	jobs.Stop()
}
