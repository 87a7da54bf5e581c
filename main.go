package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/config"
	"github.com/campus-eats/canteen-app/database"
	"github.com/campus-eats/canteen-app/notify"
	"github.com/campus-eats/canteen-app/router"
	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel, cfg.LogJSON)

	switch cfg.GinMode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed.")

	if cfg.SeedData {
		if err := database.Seed(db, "password123"); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed sample data: %v", err)
		}
		utils.InfoLogger.Info("Sample data seeded")
	}

	hub := notify.NewHub(utils.InfoLogger)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	orders := services.NewOrderService(db, hub, cfg.OrderETABuffer)
	orders.TxOptions = config.TxOptions(cfg)

	r := router.SetupRouter(router.Dependencies{
		Config:  cfg,
		DB:      db,
		Hub:     hub,
		Tokens:  tokens,
		Auth:    services.NewAuthService(db, tokens),
		Catalog: services.NewCatalogService(db),
		Orders:  orders,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Infof("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
