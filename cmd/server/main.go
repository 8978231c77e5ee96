package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"givebridge/auth"
	"givebridge/cache"
	"givebridge/config"
	"givebridge/db"
	"givebridge/db/mongo"
	"givebridge/db/postgres"
	"givebridge/handlers"
	"givebridge/logger"
	"givebridge/middleware"
	"givebridge/repository"
	"givebridge/routes"
	"givebridge/storage"
	"givebridge/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	// Load config from .env or environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	l := logger.New(cfg.IsDevelopment(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		database db.DB
		userRepo repository.UserRepository
		itemRepo repository.ItemRepository
	)

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			l.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pg.Disconnect()

		// Run migrations (for Postgres)
		if err := db.RunMigrations(pg.Conn, cfg.MigrationsPath); err != nil {
			l.Fatal().Err(err).Msg("failed to run migrations")
		}

		database = pg
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		itemRepo = repository.NewPostgresItemRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase)
		if err := mg.Connect(); err != nil {
			l.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer mg.Disconnect()

		if err := repository.EnsureMongoIndexes(ctx, mg.Client, cfg.MongoDatabase); err != nil {
			l.Fatal().Err(err).Msg("failed to create mongo indexes")
		}

		database = mg
		userRepo = repository.NewMongoUserRepo(mg.Client, cfg.MongoDatabase)
		itemRepo = repository.NewMongoItemRepo(mg.Client, cfg.MongoDatabase)

	default:
		l.Fatal().Str("db_type", cfg.DBType).Msg("DB_TYPE not supported")
	}

	var (
		images    storage.ImageStore
		uploadDir string
	)
	switch cfg.ImageStore {
	case "r2":
		r2, err := storage.NewR2Store(ctx, storage.R2Config{
			Bucket:          cfg.R2Bucket,
			AccountID:       cfg.R2AccountID,
			PublicURL:       cfg.R2PublicURL,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
		})
		if err != nil {
			l.Fatal().Err(err).Msg("failed to set up R2 image store")
		}
		images = r2
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to set up local image store")
		}
		images = local
		uploadDir = cfg.UploadDir
	}

	healthHandler := &handlers.HealthHandler{DB: database}

	// Rate limiting is optional; without Redis the limiter stays nil and the middleware is a no-op.
	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer c.Close()
		limiter = c
		healthHandler.Cache = c
	} else {
		l.Warn().Msg("REDIS_URL not set, rate limiting disabled")
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	validator := handlers.NewValidator()

	// Handlers
	userHandler := &handlers.UserHandler{
		Repo:          userRepo,
		Tokens:        tokens,
		Images:        images,
		Validator:     validator,
		BcryptCost:    cfg.BcryptCost,
		MaxUploadSize: cfg.MaxUploadSize,
	}
	itemHandler := &handlers.ItemHandler{Repo: itemRepo, Validator: validator}
	receiptHandler := &handlers.ReceiptHandler{
		Repo:   repository.NewReceiptRepository(itemRepo, userRepo),
		Render: utils.GenerateReceiptPDF,
	}

	router := routes.SetupRoutes(routes.Handlers{
		User:    userHandler,
		Item:    itemHandler,
		Receipt: receiptHandler,
		Health:  healthHandler,
	}, routes.Options{
		Logger:         l,
		Tokens:         tokens,
		Limiter:        limiter,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AllowedOrigin:  cfg.CORSAllowedOrigin,
		TrustProxy:     cfg.TrustProxy,
		UploadDir:      uploadDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("port", cfg.Port).Str("db_type", cfg.DBType).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("graceful shutdown failed")
	}
}
