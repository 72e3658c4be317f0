package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/sweetshop/gateway"
	"github.com/example/sweetshop/pkg/config"
	"github.com/example/sweetshop/pkg/media"
	"github.com/example/sweetshop/pkg/repository"
	"github.com/example/sweetshop/pkg/service"
	"go.uber.org/zap"
)

func main() {
	// Load config
	configPath := os.Getenv("SWEETSHOP_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting Sweet Shop API",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// Connect to MongoDB
	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := mongoRepo.Ping(ctx); err != nil {
		cancel()
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to create indexes", zap.Error(err))
	}
	cancel()
	logger.Info("MongoDB connected", zap.String("database", cfg.MongoDB.Database))

	// Wire services
	authSvc := service.NewAuthService(mongoRepo.Users(), &cfg.JWT, logger)
	inventorySvc := service.NewInventoryService(mongoRepo.Sweets(), mongoRepo.Users(), mongoRepo.Orders(), logger)
	orderSvc := service.NewOrderService(mongoRepo.Orders(), logger)

	var mediaSvc *media.CloudinaryService
	if cfg.Cloudinary.CloudName != "" {
		mediaSvc, err = media.NewCloudinaryService(&cfg.Cloudinary, logger)
		if err != nil {
			logger.Fatal("Failed to init Cloudinary", zap.Error(err))
		}
	} else {
		logger.Warn("Cloudinary not configured, image routes disabled")
	}

	// Seed bootstrap admin
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authSvc.EnsureAdmin(seedCtx, &cfg.Admin); err != nil {
		logger.Warn("Failed to seed admin user", zap.Error(err))
	}
	seedCancel()

	// Create gateway
	gw := gateway.NewGateway(cfg, logger, authSvc, inventorySvc, orderSvc, mediaSvc)
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	logger.Info("Sweet Shop API started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Fatal("Gateway error", zap.Error(err))
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := mongoRepo.Close(closeCtx); err != nil {
		logger.Warn("MongoDB disconnect failed", zap.Error(err))
	}

	logger.Info("Sweet Shop API stopped")
}
