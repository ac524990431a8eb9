package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/auth"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/config"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/event"
	graphqlhandler "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/handler/graphql"
	postgresrepo "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/repository/postgres"
	redisrepo "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/repository/redis"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/service"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/migrations"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/database"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/health"
	pkgkafka "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/kafka"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/tracing"
)

// GraphQL wires together all dependencies and runs the GraphQL service.
type GraphQL struct {
	cfg             *config.GraphQL
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewGraphQL creates the GraphQL application, initializing all dependencies.
func NewGraphQL(cfg *config.GraphQL, logger *slog.Logger) (*GraphQL, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracingShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  "graphql",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		Enabled:      cfg.Tracing.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	database.RegisterPoolMetrics(pool, "graphql")

	rdb, err := database.NewRedisClient(ctx, &database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.Redis.Addr))

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.Kafka.Brokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.Kafka.Brokers))

	// Dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL())
	eventProducer := event.NewProducer(producer, logger)

	userRepo := postgresrepo.NewUserRepository(pool)
	productRepo := postgresrepo.NewProductRepository(pool)
	orderRepo := postgresrepo.NewOrderRepository(pool)
	contactRepo := postgresrepo.NewContactMessageRepository(pool)
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTL())

	userService := service.NewUserService(userRepo, jwtManager, eventProducer, logger)
	catalogService := service.NewCatalogService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, eventProducer, logger, cfg.CartTTL())
	orderService := service.NewOrderService(orderRepo, eventProducer, logger)
	contactService := service.NewContactService(contactRepo, eventProducer, logger)

	resolver := graphqlhandler.NewResolver(
		userService,
		catalogService,
		cartService,
		orderService,
		contactService,
		logger,
		cfg.TokenTTL(),
	)

	schema, err := graphqlhandler.NewSchema(resolver)
	if err != nil {
		return nil, err
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	router := graphqlhandler.NewRouter(graphqlhandler.RouterConfig{
		Schema:        schema,
		Verifier:      auth.Verifier(jwtManager),
		HealthHandler: healthHandler,
		Logger:        logger,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			Environment:    cfg.Environment,
		},
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &GraphQL{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *GraphQL) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *GraphQL) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
