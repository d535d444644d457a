package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/technova/airdash-server/internal/queue"
	"github.com/technova/airdash-server/internal/store"
	"github.com/technova/airdash-server/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Reading Writer Service...")
	db, err := store.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to database")

	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Kafka consumer
	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicReadings, "dbwriter-group")
	defer consumer.Close()
	fmt.Println("Kafka consumer created (registering with broker...)")

	// Create reading writer (batch size: 100, flush interval: 5 seconds)
	readingWriter := queue.NewReadingWriter(consumer, db, 100, 5*time.Second)
	ctx := context.Background()
	if err := readingWriter.Start(ctx); err != nil {
		log.Fatalf("Failed to start reading writer: %v", err)
	}
	fmt.Println("Reading writer started")

	// Print consumer stats periodically
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			stats := consumer.Stats()
			fmt.Printf("Consumer stats: Messages=%d, Bytes=%d, Errors=%d\n",
				stats.Messages, stats.Bytes, stats.Errors)
		}
	}()

	fmt.Println("\n✓ Reading Writer Service is running")
	fmt.Println("✓ Consuming from Kafka and writing to PostgreSQL")
	fmt.Println("✓ Press Ctrl+C to stop")
	fmt.Println("\nWaiting for messages...")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
	readingWriter.Stop()
	fmt.Println("Reading Writer Service stopped")
}
