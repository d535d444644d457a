package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/technova/airdash-server/internal/notification"
	"github.com/technova/airdash-server/internal/queue"
	"github.com/technova/airdash-server/internal/risk"
	"github.com/technova/airdash-server/internal/store"
	"github.com/technova/airdash-server/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Risk Notification Service...")

	db, err := store.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to database")

	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create email notifier
	notifier, err := notification.NewRiskNotifier(&cfg.SMTP)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	// Test SMTP connection (optional, will skip if not configured)
	if err := notifier.TestConnection(); err != nil {
		fmt.Printf("Note: %v (alerts will be logged only)\n", err)
	}

	// Create predictions topic
	if err := queue.CreateTopic(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicPredictions,
		1, // single partition keeps prediction order
		1, // replication factor
	); err != nil {
		fmt.Printf("Note: Topic creation failed (may already exist): %v\n", err)
	}

	// Create consumer for prediction documents
	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicPredictions, "notification-group")
	defer consumer.Close()
	fmt.Println("Kafka consumer initialized")

	ctx := context.Background()

	fmt.Println("\n✓ Risk Notification Service is running")
	fmt.Println("✓ Press Ctrl+C to stop")

	// Start consuming prediction documents
	go func() {
		for {
			msg, err := consumer.Consume(ctx)
			if err != nil {
				log.Printf("Failed to consume message: %v\n", err)
				continue
			}

			doc, err := risk.DecodePrediction(msg.Value)
			if err != nil {
				log.Printf("Failed to decode prediction: %v\n", err)
				consumer.Commit(ctx, msg)
				continue
			}

			if doc.ID == "" {
				doc.ID = uuid.New().String()
			}
			if doc.CreatedAt.IsZero() {
				doc.CreatedAt = time.Now()
			}

			if err := db.InsertPrediction(doc); err != nil {
				log.Printf("Failed to store prediction: %v\n", err)
				// Don't commit on error - retry
				continue
			}

			if err := notifier.SendRiskAlert(doc); err != nil {
				log.Printf("Failed to send alert: %v\n", err)
			}

			// Commit offset
			if err := consumer.Commit(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v\n", err)
			}
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
}
