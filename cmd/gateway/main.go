package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/technova/airdash-server/internal/gateway"
	"github.com/technova/airdash-server/internal/queue"
	"github.com/technova/airdash-server/internal/sched"
	"github.com/technova/airdash-server/internal/session"
	"github.com/technova/airdash-server/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Air Quality Gateway...")

	// Create readings topic
	if err := queue.CreateTopic(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicReadings,
		cfg.Kafka.NumPartitions,
		1, // replication factor
	); err != nil {
		fmt.Printf("Note: Topic creation failed (may already exist): %v\n", err)
	}

	// Create Kafka producer for raw readings
	producer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReadings)
	defer producer.Close()
	fmt.Println("Kafka producer initialized")

	// Create session manager
	sessions := session.NewManager(cfg.Gateway.MaxConnections)
	fmt.Println("Session manager initialized")

	// Create scheduler for inactivity timers
	scheduler := sched.NewScheduler()
	scheduler.Start()
	defer scheduler.Stop()
	fmt.Println("Scheduler started")

	// Create and start TCP server
	tcpServer := gateway.NewTCPServer(&cfg.Gateway, sessions, scheduler, producer)
	if err := tcpServer.Start(); err != nil {
		log.Fatalf("Failed to start gateway: %v", err)
	}
	defer tcpServer.Stop()

	// Print statistics periodically
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			stats := sessions.Stats()
			schedStats := scheduler.Stats()
			fmt.Printf("\n--- Gateway Statistics ---\n")
			fmt.Printf("Active Connections: %d / %d\n", stats.TotalConnections, stats.MaxConnections)
			fmt.Printf("Unique Devices: %d\n", stats.UniqueDevices)
			fmt.Printf("Scheduled Timers: %d\n", schedStats.ScheduledTasks)
			fmt.Printf("--------------------------\n\n")
		}
	}()

	fmt.Println("\n✓ Air Quality Gateway is running")
	fmt.Printf("✓ TCP Server listening on port %d\n", cfg.Gateway.Port)
	fmt.Println("✓ Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
}
