package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/cache"
	"marketplace-be/internal/category"
	"marketplace-be/internal/config"
	"marketplace-be/internal/db"
	"marketplace-be/internal/events"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/order"
	"marketplace-be/internal/product"
	"marketplace-be/internal/rating"
	"marketplace-be/internal/transport"
	"marketplace-be/internal/user"

	"go.uber.org/zap"
)

const (
	shutdownTimeout = 5 * time.Second
	eventBuffer     = 256
)

type deps struct {
	cache     cache.Cache
	publisher events.Publisher
	metrics   *metrics.Registry
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	d := deps{
		cache:     cache.Noop{},
		publisher: events.NoopPublisher{},
		metrics:   metrics.NewRegistry(),
	}

	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()

		rc := cache.NewRedisCache(rdb)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unreachable, summaries will load from the database", zap.Error(err))
		}
		d.cache = rc
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic, eventBuffer)
		// Runs until Close after Shutdown, so drained requests still publish.
		producer.Start(context.Background())
		d.publisher = producer
		log.Info("event publishing enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaOrderTopic),
		)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	router := transport.NewRouter(transport.RouterConfig{
		Services: buildServices(database, tokens, cfg, d),
		Tokens:   tokens,
		Limiter:  limiter,
		Metrics:  d.metrics,
		Timeout:  cfg.HTTPRequestTimeout,
	})
	srv := newHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}

	log.Info("server stopped")
	return runErr
}

func buildServices(database *sql.DB, tokens *auth.TokenIssuer, cfg *config.Config, d deps) transport.Services {
	userRepo := user.NewRepository(database)
	categoryRepo := category.NewRepository(database)
	productRepo := product.NewRepository(database)
	orderRepo := order.NewRepository(database)
	ratingRepo := rating.NewRepository(database)

	return transport.Services{
		Users:      user.NewService(userRepo, tokens),
		Categories: category.NewService(categoryRepo),
		Products:   product.NewService(productRepo, categoryRepo),
		Orders:     order.NewService(orderRepo, productRepo, d.publisher, d.metrics),
		Ratings: rating.NewService(rating.Deps{
			Repo:      ratingRepo,
			Orders:    orderRepo,
			Profiles:  userRepo,
			Cache:     d.cache,
			CacheTTL:  cfg.RatingCacheTTL,
			Publisher: d.publisher,
			Metrics:   d.metrics,
		}),
	}
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.HTTPRequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
