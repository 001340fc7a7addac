package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-lookup-service/internal/bot"
	"movie-lookup-service/internal/catalog"
	"movie-lookup-service/internal/config"
	"movie-lookup-service/internal/database"
	"movie-lookup-service/internal/handler"
	"movie-lookup-service/internal/metrics"
	"movie-lookup-service/internal/registry"
	"movie-lookup-service/internal/service"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Select the registry backend
	var store registry.Store
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.DB)
		if err != nil {
			slog.Error("failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = registry.NewPostgresStore(db)

	case config.DriverMongo:
		client, coll, err := database.NewMongo(cfg.Mongo)
		if err != nil {
			slog.Error("failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()
		store = registry.NewMongoStore(coll)

	default:
		slog.Info("using in-memory registry, state is lost on restart")
		store = registry.NewMemoryStore()
	}

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Load the catalog
	cat := catalog.New()
	if cfg.CatalogPath != "" {
		if err := cat.LoadFromFile(cfg.CatalogPath); err != nil {
			slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
	} else {
		cat.Load(catalog.DefaultRecords())
	}
	slog.Info("catalog loaded", "movies", cat.Len())

	// Initialize layers
	lookupSvc := service.NewLookupService(cat, store, rdb)
	userSvc := service.NewUserService(store)
	lookupHandler := handler.NewLookupHandler(lookupSvc)
	userHandler := handler.NewUserHandler(userSvc)

	// Metrics
	metrics.Init()
	go metrics.Serve(cfg.MetricsPort)
	slog.Info("metrics listening", "port", cfg.MetricsPort)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Lookup Service",
		ServerHeader: "Movie-Lookup-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", lookupHandler.Health)
	api.Post("/search", lookupHandler.Search)
	api.Post("/users", userHandler.RegisterUser)
	api.Post("/users/:id/favorites", userHandler.AddFavorite)
	api.Get("/users/:id/favorites", userHandler.GetFavorites)
	api.Get("/users/:id/history", userHandler.GetHistory)

	// Telegram front end (optional)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tgBot *bot.Bot
	if cfg.Telegram.Token != "" {
		tgBot, err = bot.New(cfg.Telegram, lookupSvc, userSvc, slog.Default())
		if err != nil {
			slog.Error("failed to create bot", "error", err)
			os.Exit(1)
		}
		go tgBot.Run(ctx)
		slog.Info("telegram bot started")
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot front end disabled")
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie lookup service...")
		if tgBot != nil {
			tgBot.Stop()
		}
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie lookup service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
