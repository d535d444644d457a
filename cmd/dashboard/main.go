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

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"

	"github.com/technova/airdash-server/internal/api"
	"github.com/technova/airdash-server/internal/dashboard"
	"github.com/technova/airdash-server/internal/prefs"
	"github.com/technova/airdash-server/internal/queue"
	"github.com/technova/airdash-server/internal/sched"
	"github.com/technova/airdash-server/internal/store"
	"github.com/technova/airdash-server/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Dashboard API Service...")

	db, err := store.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to database")

	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to Redis for preferences and the cached view model
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	fmt.Println("Connected to Redis")

	prefsStore := prefs.NewStore(redisClient)

	// Producer for the HTTP ingest endpoint
	producer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReadings)
	defer producer.Close()

	handler := api.NewHandler(db, prefsStore, producer, cfg.Dashboard.SnapshotLimit)
	router := api.NewRouter(handler)

	// Refresh the cached view model in the background so the first
	// dashboard request after a quiet period is served warm.
	scheduler := sched.NewScheduler()
	scheduler.Start()
	defer scheduler.Stop()

	var refresh func()
	refresh = func() {
		ctx := context.Background()

		mode, err := prefsStore.ViewMode(ctx)
		if err != nil {
			mode = dashboard.ModeRecent
		}

		records, err := db.RecentReadings(cfg.Dashboard.SnapshotLimit)
		if err != nil {
			fmt.Printf("View model refresh failed: %v\n", err)
		} else {
			vm := dashboard.Aggregate(records, mode, time.Now())
			if err := prefsStore.CacheViewModel(ctx, vm); err != nil {
				fmt.Printf("Failed to cache view model: %v\n", err)
			}
		}

		scheduler.Schedule("dashboard-refresh", time.Now().Add(cfg.Dashboard.RefreshInterval), refresh)
	}
	scheduler.Schedule("dashboard-refresh", time.Now().Add(cfg.Dashboard.RefreshInterval), refresh)
	fmt.Printf("View model refresh scheduled every %s\n", cfg.Dashboard.RefreshInterval)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("\n✓ Dashboard API listening on %s\n", addr)
		fmt.Println("✓ Press Ctrl+C to stop")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("HTTP server shutdown error: %v\n", err)
	}
	fmt.Println("Dashboard API Service stopped")
}
