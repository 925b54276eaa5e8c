package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcziwoda/skylock-sub000/internal/config"
	"github.com/arcziwoda/skylock-sub000/internal/database"
	"github.com/arcziwoda/skylock-sub000/internal/handlers"
	"github.com/arcziwoda/skylock-sub000/internal/services"
	"github.com/arcziwoda/skylock-sub000/internal/storage"
	"github.com/arcziwoda/skylock-sub000/pkg/logger"
	"github.com/arcziwoda/skylock-sub000/pkg/utils"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	store, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("blob storage initialization failed: %v", err)
	}

	links := services.NewLinkBuilder(cfg.Server.PublicBaseURL)
	resources := services.NewResourceService(db, store, links)

	app := handlers.NewApp(db, resources)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":            cfg.Server.Port,
		"address":         listenAddr,
		"storage_backend": cfg.Storage.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

func newBlobStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "minio":
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			return nil, fmt.Errorf("failed ensuring bucket: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
