package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/technova/airdash-server/internal/protocol"
	"github.com/technova/airdash-server/internal/store"
)

// ReadingWriter consumes raw readings from Kafka and batch-writes them
// to the database
type ReadingWriter struct {
	consumer      *Consumer
	db            *store.DB
	batchSize     int
	flushInterval time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewReadingWriter creates a new reading writer
func NewReadingWriter(consumer *Consumer, db *store.DB, batchSize int, flushInterval time.Duration) *ReadingWriter {
	return &ReadingWriter{
		consumer:      consumer,
		db:            db,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		stopCh:        make(chan struct{}),
	}
}

// Start begins consuming and writing to the database
func (rw *ReadingWriter) Start(ctx context.Context) error {
	rw.wg.Add(1)
	go rw.run(ctx)
	return nil
}

// Stop stops the reading writer gracefully
func (rw *ReadingWriter) Stop() {
	close(rw.stopCh)
	rw.wg.Wait()
}

func (rw *ReadingWriter) run(ctx context.Context) {
	defer rw.wg.Done()

	var batch []kafka.Message
	ticker := time.NewTicker(rw.flushInterval)
	defer ticker.Stop()

	msgChan := make(chan kafka.Message, 10)
	go func() {
		for {
			msg, err := rw.consumer.Consume(ctx)
			if err != nil {
				fmt.Printf("Consumer error: %v\n", err)
				continue
			}
			msgChan <- msg
		}
	}()

	for {
		select {
		case <-rw.stopCh:
			// Flush remaining batch before stopping
			if len(batch) > 0 {
				rw.flush(ctx, batch)
			}
			return

		case <-ticker.C:
			if len(batch) > 0 {
				rw.flush(ctx, batch)
				batch = nil
			}

		case msg := <-msgChan:
			batch = append(batch, msg)
			if len(batch) >= rw.batchSize {
				rw.flush(ctx, batch)
				batch = nil
			}
		}
	}
}

func (rw *ReadingWriter) flush(ctx context.Context, batch []kafka.Message) {
	if len(batch) == 0 {
		return
	}

	successCount := 0
	for _, msg := range batch {
		if err := rw.processMessage(msg); err != nil {
			fmt.Printf("Failed to process reading: %v\n", err)
			continue
		}
		successCount++

		// Commit offset after successful processing
		if err := rw.consumer.Commit(ctx, msg); err != nil {
			fmt.Printf("Failed to commit offset: %v\n", err)
		}
	}

	fmt.Printf("Flushed batch of %d readings to database\n", successCount)
}

func (rw *ReadingWriter) processMessage(msg kafka.Message) error {
	readingMsg, err := protocol.DecodeReadingMessage(msg.Value)
	if err != nil {
		return fmt.Errorf("failed to decode reading: %w", err)
	}

	reading := &store.SensorReading{
		DeviceID:   readingMsg.DeviceID,
		Location:   readingMsg.Location,
		Fields:     readingMsg.Fields,
		ReceivedAt: readingMsg.ReceivedAt,
	}
	// A reading without a parseable timestamp is still stored; the
	// dashboard renders it with an empty label.
	if ts, ok := readingMsg.Fields.Instant(); ok {
		reading.RecordedAt = &ts
	}

	if err := rw.db.InsertReading(reading); err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	return nil
}
