// Package main is the entry point for Photo Analyzer.
package main

import (
	"context"
	"os"
	"time"

	"photo-analyzer-go/application"
	"photo-analyzer-go/core/eventbus"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/infrastructure/config"
	"photo-analyzer-go/infrastructure/logging"
	"photo-analyzer-go/infrastructure/repository"
	"photo-analyzer-go/infrastructure/vision"
	"photo-analyzer-go/presentation"
	"photo-analyzer-go/resources"

	"fyne.io/fyne/v2/app"
)

func main() {
	// Provider keys may come from a .env file next to the binary
	config.LoadEnv()

	cfg, err := config.Load(resources.DefaultConfig, config.UserConfigPath())
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logger, closeLog, err := logging.Setup(logging.ConfigWithLevel(cfg.LogLevel()))
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting Photo Analyzer", "provider", cfg.Provider().String())

	ctx := context.Background()

	keyring := credential.NewKeyring(config.Credentials(nil))

	describers := []vision.Describer{
		vision.NewOpenAIClient(cfg.OpenAI(), logger),
		vision.NewImageDescriberClient(cfg.ImageDescriber(), logger),
	}

	// Recent images persist in MongoDB when configured, otherwise in memory
	var repo library.Repository = repository.NewMemoryRecentImageRepository()
	if mongoCfg := cfg.MongoDB(); mongoCfg != nil {
		mongoDB, err := repository.NewMongoDB(ctx, mongoCfg, logger)
		if err != nil {
			logger.Warn("MongoDB unavailable, recent images will not persist", "error", err)
		} else {
			defer mongoDB.Close(ctx)
			mongoRepo := repository.NewMongoRecentImageRepository(mongoDB, logger)
			if err := mongoRepo.EnsureIndexes(ctx); err != nil {
				logger.Warn("Failed to create recent image indexes", "error", err)
			}
			repo = mongoRepo
		}
	}

	// Initialize event bus
	eventBus := eventbus.New(100, logger)
	defer eventBus.Close()

	// Initialize coordinator
	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		State:      application.NewAppState(keyring, cfg.Provider()),
		Describers: describers,
		Library:    library.NewService(repo, cfg.LibraryLimit()),
		EventBus:   eventBus,
		Logger:     logger,
	})
	coordinator.Start()
	defer coordinator.Stop()

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	fyneApp := app.NewWithID("online.photoanalyzer.desktop")

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:    fyneApp,
		Bridge: bridge,
		Logger: logger,
	})
	defer mainWindow.Cleanup()

	mainWindow.Show()
	fyneApp.Run()

	// Force exit if an in-flight request keeps shutdown from completing
	go func() {
		time.Sleep(10 * time.Second)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
}
