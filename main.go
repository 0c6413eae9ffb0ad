// Package main provides the entry point for the linkhub URL shortener
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/linkhub/app/handlers"
	"github.com/amirphl/linkhub/app/logger"
	"github.com/amirphl/linkhub/app/router"
	"github.com/amirphl/linkhub/app/scheduler"
	"github.com/amirphl/linkhub/app/services"
	businessflow "github.com/amirphl/linkhub/business_flow"
	"github.com/amirphl/linkhub/config"
	"github.com/amirphl/linkhub/migrations"
	"github.com/amirphl/linkhub/repository"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.Config
	log       *zap.Logger
	sqlDB     *sql.DB
	cache     *redis.Client
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("Starting linkhub",
		zap.String("environment", cfg.Deployment.Environment),
		zap.String("version", cfg.Deployment.Version),
	)

	app, err := initializeApplication(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize application", zap.Error(err))
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.router.Start(cfg.Server.Address()); err != nil {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-sigChan
	zlog.Info("Shutting down gracefully...")
	app.shutdown()
	zlog.Info("Server stopped")
}

// initializeDatabase opens the gorm connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, zlog *zap.Logger) (*gorm.DB, *sql.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	zlog.Info("Database connection established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)
	return db, sqlDB, nil
}

// runMigrations applies the embedded schema through lib/pq
func runMigrations(cfg config.DatabaseConfig, zlog *zap.Logger) error {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	applied, err := migrations.Run(ctx, db, zlog)
	if err != nil {
		return err
	}
	zlog.Info("Migrations complete", zap.Int("applied", applied))
	return nil
}

// initializeCache connects to redis and requires a PONG before serving
func initializeCache(cfg config.CacheConfig, zlog *zap.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.RedisDB != 0 {
		opt.DB = cfg.RedisDB
	}

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := rc.Ping(ctx).Result()
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if pong != "PONG" {
		_ = rc.Close()
		return nil, fmt.Errorf("unexpected redis ping reply %q", pong)
	}

	zlog.Info("Redis connection established", zap.Int("db", opt.DB))
	return rc, nil
}

// initializeApplication wires repositories, flows, handlers and the router
func initializeApplication(cfg *config.Config, zlog *zap.Logger) (*Application, error) {
	if cfg.Database.RunMigrations {
		if err := runMigrations(cfg.Database, zlog); err != nil {
			return nil, err
		}
	}

	db, sqlDB, err := initializeDatabase(cfg.Database, zlog)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache, zlog)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	monitor := scheduler.NewHealthMonitor(map[string]scheduler.Probe{
		"database": sqlDB.PingContext,
		"redis":    func(ctx context.Context) error { return rc.Ping(ctx).Err() },
	}, cfg.Cache.HealthInterval, zlog)
	stopMonitor := monitor.Start(context.Background())

	// Repositories
	shortLinkRepo := repository.NewShortLinkRepository(db)
	landingPageRepo := repository.NewLandingPageRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	transactor := repository.NewTransactor(db)

	// Services
	pageCache := services.NewRedisPageCache(rc, cfg.Cache)
	keys := businessflow.NewKeyGenerator(cfg.Link.KeyLength, cfg.Link.TokenLength, zlog)

	// Flows
	shortLinkFlow := businessflow.NewShortLinkFlow(shortLinkRepo, keys, &cfg.Link, zlog)
	landingPageFlow := businessflow.NewLandingPageFlow(landingPageRepo, pageCache, zlog)
	contactFlow := businessflow.NewContactFlow(topicRepo, messageRepo, transactor, zlog)

	// Handlers
	h := router.Handlers{
		ShortLink:   handlers.NewShortLinkHandler(shortLinkFlow, zlog),
		LandingPage: handlers.NewLandingPageHandler(landingPageFlow, zlog),
		Contact:     handlers.NewContactHandler(contactFlow, zlog),
		Health:      handlers.NewHealthHandler(sqlDB, rc, cfg.Deployment.Version, zlog),
	}

	return &Application{
		router:    router.NewFiberRouter(cfg, h, zlog),
		config:    cfg,
		log:       zlog,
		sqlDB:     sqlDB,
		cache:     rc,
		stopFuncs: []func(){stopMonitor},
	}, nil
}

func (a *Application) shutdown() {
	for _, fn := range a.stopFuncs {
		fn()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		a.log.Error("Error during shutdown", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.log.Warn("Failed to close redis client", zap.Error(err))
	}
	if err := a.sqlDB.Close(); err != nil {
		a.log.Warn("Failed to close database", zap.Error(err))
	}
}
