package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finis-oculus/internal/api/config"
	delivery "finis-oculus/internal/api/delivery/http"
	"finis-oculus/internal/api/delivery/middleware"
	_ "finis-oculus/internal/api/docs"
	"finis-oculus/internal/api/repository"
	"finis-oculus/internal/api/service"
	"finis-oculus/internal/auth"
	"finis-oculus/pkg/logger"
	"finis-oculus/pkg/postgres"
	"finis-oculus/pkg/ratelimit"
	"finis-oculus/pkg/redis"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var (
	configPath string
	tokenUser  string
	tokenTTL   time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issues an identity token for local development",
	RunE:  runToken,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Repositories
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	var newsRepo repository.NewsRepository = yahooRepo
	if cfg.News.Provider == "rss" {
		newsRepo = repository.NewRSSNewsRepository(cfg.News.RSSURL, appLogger)
	}
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	sentimentRepo := repository.NewSentimentRepository(db.DB)

	var summaryRepo repository.AISummaryRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		summaryRepo = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
	}

	// Services
	marketSvc := service.NewMarketService(cfg, appLogger, yahooRepo, newsRepo, sentimentRepo, summaryRepo)
	watchlistSvc := service.NewWatchlistService(cfg, appLogger, watchlistRepo, profileRepo, sentimentRepo, marketSvc)
	profileSvc := service.NewProfileService(cfg, appLogger, profileRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(appLogger)
	ipExtractor, err := middleware.ClientIPExtractor(cfg.RateLimit.TrustedProxies)
	if err != nil {
		appLogger.Fatal("Invalid rate limit configuration", logger.ErrorField(err))
	}
	e.IPExtractor = ipExtractor
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(appLogger))

	if cfg.RateLimit.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()

		limiter := ratelimit.NewRedisLimiter(redisClient.Client, cfg.RateLimit.RequestsPerMinute)
		e.Use(middleware.RateLimit(limiter, appLogger))
	}

	requireAuth := middleware.JWTAuth(auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer), appLogger)

	apiV1 := e.Group("/api/v1")
	delivery.NewMarketHandler(marketSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewWatchlistHandler(watchlistSvc, appLogger).RegisterRoutes(apiV1.Group("/watchlist", requireAuth))
	delivery.NewProfileHandler(profileSvc, appLogger).RegisterRoutes(apiV1.Group("/profile", requireAuth))

	if cfg.Backend.BaseURL != "" {
		delivery.NewProxyHandler(cfg.Backend.BaseURL, "/api/python", cfg.Backend.Timeout, appLogger).RegisterRoutes(e)
	}

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is not configured")
	}
	token, err := auth.Sign(cfg.Auth.Secret, cfg.Auth.Issuer, tokenUser, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// @title Finis Oculus API
// @version 1.0
// @description Market data shaping, watchlists and profiles for the Finis Oculus dashboard.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User id to put in the token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(serveCmd, tokenCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
