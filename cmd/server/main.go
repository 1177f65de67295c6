package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/grabkey/deal-service/config"
	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/handlers"
	"github.com/grabkey/deal-service/internal/middleware"
	"github.com/grabkey/deal-service/internal/seed"
	"github.com/grabkey/deal-service/internal/storage"
	"github.com/grabkey/deal-service/internal/stores"
	"github.com/grabkey/deal-service/internal/sweepers"
	"github.com/grabkey/deal-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting deal service")

	ctx := context.Background()

	shutdownTelemetry := telemetry.MustInit(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
	})
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shut down telemetry")
		}
	}()

	repo, cleanup, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize catalog")
	}
	defer cleanup()

	st, err := buildStorage(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize state storage")
	}

	wishlist := stores.NewWishlist(st, *logger)
	alerts := stores.NewAlerts(st, *logger)
	notifications := stores.NewNotifications(st, seed.Notifications(), *logger)
	auth := stores.NewAuth(st, *logger)
	prefs := stores.NewPreferences(st, *logger)

	sweeper := sweepers.NewAlertSweeper(repo, alerts, notifications, logger, cfg.Sweeper.Interval)
	go sweeper.Start(ctx)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	api := handlers.NewAPI(repo, cfg.Catalog.PageSize, wishlist, alerts, notifications, auth, prefs)

	router := gin.New()
	router.Use(gin.Recovery())
	setupRequestLogging(router, logger)

	router.GET("/health", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit())
	{
		games := v1.Group("/games")
		{
			games.GET("", api.SearchGames)
			games.GET("/:slug", api.GetGame)
			games.GET("/:slug/prices", api.GetGamePrices)
			games.GET("/:slug/history", api.GetGameHistory)
			games.GET("/:slug/prediction", api.GetGamePrediction)
		}

		v1.GET("/deals", api.ListDeals)
		v1.GET("/stores", api.ListStores)

		wl := v1.Group("/wishlist")
		{
			wl.GET("", api.ListWishlist)
			wl.POST("", api.AddWishlistItem)
			wl.PATCH("/:gameId", api.UpdateWishlistTarget)
			wl.DELETE("/:gameId", api.RemoveWishlistItem)
		}

		al := v1.Group("/alerts")
		{
			al.GET("", api.ListAlerts)
			al.POST("", api.CreateAlert)
			al.GET("/:id", api.GetAlert)
			al.POST("/:id/toggle", api.ToggleAlert)
			al.PATCH("/:id", api.UpdateAlert)
			al.DELETE("/:id", api.RemoveAlert)
		}

		nf := v1.Group("/notifications")
		{
			nf.GET("", api.ListNotifications)
			nf.POST("/:id/read", api.MarkNotificationRead)
			nf.POST("/read-all", api.MarkAllNotificationsRead)
			nf.DELETE("/:id", api.RemoveNotification)
			nf.DELETE("", api.ClearNotifications)
		}

		prefGroup := v1.Group("/preferences")
		{
			prefGroup.GET("", api.GetPreferences)
			prefGroup.PATCH("", api.UpdatePreferences)
		}

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", api.Login)
			authGroup.POST("/logout", api.Logout)
			authGroup.GET("/me", api.CurrentUser)
			authGroup.PATCH("/me", api.UpdateUser)
		}
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.POST("/catalog/reload", func(c *gin.Context) {
			pg, ok := repo.(*catalog.PostgresRepository)
			if !ok {
				c.JSON(http.StatusConflict, gin.H{"error": "catalog reload requires the postgres source"})
				return
			}
			if err := pg.Import(c.Request.Context(), seed.Snapshot()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload catalog"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
		})
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// buildRepository wires the configured catalog source. The memory source
// serves the built-in snapshot; the postgres source connects a pool and
// reads from the catalog tables.
func buildRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (catalog.Repository, func(), error) {
	switch cfg.Catalog.Source {
	case "postgres":
		dbURL := config.GetDatabaseURL()
		if dbURL == "" {
			return nil, nil, fmt.Errorf("catalog source is postgres but DATABASE_URL is not set")
		}
		pool, err := catalog.Connect(ctx, dbURL, cfg.Database.MaxConnections, cfg.Database.MinConnections)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info().Msg("Database connected")
		return catalog.NewPostgresRepository(pool), pool.Close, nil
	case "memory", "":
		logger.Info().Msg("Serving built-in catalog snapshot")
		return catalog.NewMemoryRepository(seed.Snapshot()), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func buildStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "local", "":
		return storage.NewLocalStorage(cfg.BasePath)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "deal-service").Logger()
	return &logger
}

func setupRequestLogging(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
