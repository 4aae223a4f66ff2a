package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nutrition-app/config"
	"nutrition-app/database"
	routes "nutrition-app/internal/app/http"
	"nutrition-app/internal/app/http/validation"
	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/rooms"
	"nutrition-app/internal/domain/tracking"
	"nutrition-app/internal/domain/users"
	"nutrition-app/internal/infra/abacatepay"
	"nutrition-app/internal/infra/cache"
)

const chargeStatusTTL = 10 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		logger.Error("database setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("connected and migrated successfully")

	if err := validation.Register(); err != nil {
		logger.Error("failed to register validators", slog.Any("error", err))
		os.Exit(1)
	}

	deps := routes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Users:    users.NewRepository(db),
		Billing:  billing.NewRepository(db),
		Tracking: tracking.NewRepository(db),
		Rooms:    rooms.NewRepository(db),
		Gateway:  abacatepay.NewClient(cfg.AbacatePayBaseURL, cfg.AbacatePayAPIKey, nil),
	}

	if cfg.RedisURL != "" {
		client, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, charge status cache disabled", slog.Any("error", err))
		} else {
			defer client.Close()
			deps.StatusCache = cache.NewChargeStatusCache(client, chargeStatusTTL)
		}
	}

	r := gin.Default()

	// CORS before routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
