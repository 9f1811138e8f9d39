package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tiffinbox/internal/cart"
	"tiffinbox/internal/checkout"
	"tiffinbox/internal/config"
	"tiffinbox/internal/discovery"
	"tiffinbox/internal/fulfillment"
	"tiffinbox/internal/infrastructure/logger"
	"tiffinbox/internal/infrastructure/mysql"
	"tiffinbox/internal/infrastructure/payment"
	"tiffinbox/internal/server"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	gateway := payment.NewClient(cfg.Gateway, zapLogger)

	discoveryCtrl := discovery.NewModule(db, cfg, zapLogger)
	checkoutCtrl := checkout.NewModule(db, cfg, gateway, zapLogger)
	fulfillmentCtrl := fulfillment.NewModule(db, zapLogger)
	cartCtrl := cart.NewModule(db, zapLogger)

	router := server.NewRouter(discoveryCtrl, checkoutCtrl, fulfillmentCtrl, cartCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
