package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskbot/internal/app"
	"taskbot/internal/config"
	"taskbot/internal/scoring"
	"taskbot/internal/store"
	"taskbot/internal/telegram"
	"taskbot/internal/undo"
)

func main() {
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	taskStore := store.NewPostgresStore(db)
	healthChecks := map[string]telegram.Pinger{"database": taskStore}

	// Undo slots live in Redis when configured, otherwise in process memory.
	var undoStore undo.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis for undo slots")
		redisStore, err := undo.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisStore.Close()
		undoStore = redisStore
		healthChecks["redis"] = redisStore
	} else {
		log.Printf("Using in-memory undo slots")
		undoStore = undo.NewMemoryStore()
	}

	service := app.New(taskStore, undoStore, scoring.SystemClock{})
	client := telegram.NewClient(cfg.BotToken)
	handler := telegram.NewHandler(service, client)

	if err := client.SetMyCommands(ctx, telegram.Commands()); err != nil {
		log.Printf("WARNING: set bot commands: %v", err)
	}

	if cfg.WebhookURL != "" {
		runWebhook(ctx, cfg, client, handler, healthChecks)
		return
	}
	runPolling(ctx, client, handler)
}

func runWebhook(ctx context.Context, cfg config.Config, client *telegram.Client, handler *telegram.Handler, healthChecks map[string]telegram.Pinger) {
	if err := client.SetWebhook(ctx, cfg.WebhookURL+"/"+cfg.BotToken); err != nil {
		log.Fatalf("set webhook failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/"+cfg.BotToken, handler.WebhookHandler())
	mux.Handle("/healthz", telegram.HealthHandler(healthChecks))
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Starting webhook on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func runPolling(ctx context.Context, client *telegram.Client, handler *telegram.Handler) {
	// A leftover webhook blocks getUpdates.
	if err := client.DeleteWebhook(ctx); err != nil {
		log.Printf("WARNING: delete webhook: %v", err)
	}

	pollCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("Starting polling mode")
	telegram.Poll(pollCtx, client, handler)
}
