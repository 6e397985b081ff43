// @title                       Merchant Onboarding API
// @version                     1.0
// @description                 Account-stage resolution, registration wizard, admin review and two-factor authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	_ "github.com/gatepay/merchant-onboarding/docs"
	"github.com/gatepay/merchant-onboarding/internal/api"
	"github.com/gatepay/merchant-onboarding/internal/api/handler"
	"github.com/gatepay/merchant-onboarding/internal/core/service"
	"github.com/gatepay/merchant-onboarding/internal/infrastructure/config"
	mongorepo "github.com/gatepay/merchant-onboarding/internal/infrastructure/db/mongo"
	redisstore "github.com/gatepay/merchant-onboarding/internal/infrastructure/db/redis"
	"github.com/gatepay/merchant-onboarding/internal/infrastructure/realtime"
	"github.com/gatepay/merchant-onboarding/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Config
	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	// 2. Logging
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "merchant-onboarding",
	})

	// 3. MongoDB
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// 4. Redis
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// 5. Repositories
	identities := mongorepo.NewIdentityRepository(db)
	applications := mongorepo.NewApplicationRepository(db)
	mfaSettings := mongorepo.NewMFARepository(db)
	activity := mongorepo.NewActivityRepository(db)
	settings := mongorepo.NewSettingsRepository(db)

	if err := mongorepo.EnsureIndexes(ctx, identities, applications, activity); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	limiter := redisstore.NewAttemptLimiter(rdb, cfg.MFA.MaxAttempts, cfg.MFA.LockoutWindow)
	revoker := redisstore.NewSessionRevoker(rdb)
	notifier := redisstore.NewNotifier(rdb, cfg.Realtime.Channel)
	tx := mongorepo.NewTransactor(mongoClient)

	// 6. Services
	stages := service.NewStageService(applications, cfg.PrivilegedEmail, logger.Component("stage"))
	sessions := service.NewSessionRouter(stages, logger.Component("session"))
	mfa := service.NewMFAService(mfaSettings, limiter, service.MFAConfig{
		Issuer:          cfg.MFA.Issuer,
		BackupCodeCount: cfg.MFA.BackupCodes,
	}, logger.Component("mfa"))
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.ChallengeTTL)
	auth := service.NewAuthService(identities, mfa, sessions, tokens, revoker, logger.Component("auth"))
	stats := service.NewStatsService(applications, activity, logger.Component("stats"))
	// Local caches are invalidated in-process when a change commits; the
	// notifier reaches the other replicas.
	registration := service.NewRegistrationService(applications, activity, tx, notifier, logger.Component("registration"), stages, stats)
	review := service.NewReviewService(applications, activity, settings, tx, notifier, logger.Component("review"), stages, stats)

	// 7. Realtime invalidation
	dispatcher := realtime.NewDispatcher(cfg.Realtime.Workers, logger.Component("dispatcher"), stages, stats)
	subscriber := realtime.NewSubscriber(rdb, notifier.Channel(), dispatcher, logger.Component("subscriber"))

	// 8. HTTP
	e := api.NewRouter(api.Dependencies{
		Auth:         auth,
		MFA:          mfa,
		Registration: registration,
		Sessions:     sessions,
		Review:       review,
		Stats:        stats,
		HealthChecks: map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		AuthRate:  cfg.Auth.RateLimit,
		AuthBurst: cfg.Auth.RateBurst,
		Logger:    logger.Component("http"),
	})

	// 9. Run
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dispatcher.Start(gctx)
		return subscriber.Run(gctx)
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
