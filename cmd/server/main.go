package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/api"
	"github.com/stitts-dev/tennis-sim/internal/api/middleware"
	"github.com/stitts-dev/tennis-sim/internal/services"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/pkg/config"
	"github.com/stitts-dev/tennis-sim/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the run store: redis when configured and reachable, otherwise
	// in-process memory with the same TTL semantics.
	store := buildRunStore(cfg, log)
	defer store.Close()

	// Initialize services
	hub := services.NewProgressHub(cfg.WSReadBuffer, cfg.WSWriteBuffer, log)
	go hub.Run()

	sim := simulator.New(cfg.SimulationWorkers, log)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"time":              time.Now().UTC(),
			"websocket_clients": hub.ConnectionCount(),
		})
	})

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, store, hub, sim, cfg, log)

	// WebSocket endpoint at root level, not under /api/v1
	router.GET("/ws", hub.HandleWebSocket)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func buildRunStore(cfg *config.Config, log *logrus.Logger) services.RunStore {
	if cfg.RedisURL == "" {
		log.Info("Using in-memory run store")
		return services.NewMemoryRunStore(cfg.ResultTTL(), log)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warnf("Invalid Redis URL, falling back to in-memory run store: %v", err)
		return services.NewMemoryRunStore(cfg.ResultTTL(), log)
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("Redis unreachable, falling back to in-memory run store: %v", err)
		client.Close()
		return services.NewMemoryRunStore(cfg.ResultTTL(), log)
	}

	log.Info("Using redis run store")
	return services.NewRedisRunStore(client, cfg.ResultTTL())
}
