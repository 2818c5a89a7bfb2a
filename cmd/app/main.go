package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"tarra_waitlist/internal/api"
	"tarra_waitlist/internal/middleware"
	"tarra_waitlist/internal/repository"
	"tarra_waitlist/internal/service"
	"tarra_waitlist/pkg/logger"
	"tarra_waitlist/pkg/ratelimit"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	throttle := ratelimit.New(ratelimit.Config{
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      cfg.RateLimit.Window,
		MaxOrigins:  cfg.RateLimit.MaxOrigins,
	})

	leaderboardService := service.NewLeaderboardService(repo, blendPolicy(cfg.Leaderboard))
	waitlistService := service.NewWaitlistService(repo, throttle, leaderboardService)
	fraudService := service.NewFraudService(repo, service.FraudConfig{
		VolumeThreshold: cfg.Fraud.VolumeThreshold,
		PrefixLength:    cfg.Fraud.PrefixLength,
		PrefixThreshold: cfg.Fraud.PrefixThreshold,
	})
	ghostService := service.NewGhostService(repo)

	authorization := middleware.NewAuthorization(cfg.Admin.Token)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewWaitlistRoutes(a, waitlistService)
	api.NewLeaderboardRoutes(a, leaderboardService)
	api.NewAdminRoutes(a, fraudService, ghostService, authorization)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

func blendPolicy(cfg LeaderboardConfig) service.BlendPolicy {
	switch cfg.BlendPolicy {
	case "ghost-floor":
		n := cfg.GhostFloor
		if n <= 0 {
			n = 10
		}
		return service.BlendGhostFloor(n)
	case "recency":
		return service.BlendTopByRecency()
	default:
		return service.BlendUnion()
	}
}
