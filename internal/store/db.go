package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/technova/airdash-server/internal/risk"
	"github.com/technova/airdash-server/internal/telemetry"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Connect establishes a connection to the database
func Connect(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &DB{db}, nil
}

// RunMigrations executes all SQL migration files in order
func (db *DB) RunMigrations(migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, filename := range sqlFiles {
		fmt.Printf("Running migration: %s\n", filename)

		filePath := filepath.Join(migrationsDir, filename)
		content, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
	}

	fmt.Println("All migrations completed successfully")
	return nil
}

// InsertReading inserts a raw sensor reading
func (db *DB) InsertReading(reading *SensorReading) error {
	fields, err := json.Marshal(reading.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields: %w", err)
	}

	query := `
		INSERT INTO sensor_readings (
			device_id, location, recorded_at, fields, received_at
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return db.QueryRow(
		query,
		reading.DeviceID,
		reading.Location,
		reading.RecordedAt,
		fields,
		reading.ReceivedAt,
	).Scan(&reading.ID)
}

// RecentReadings returns the newest raw records, newest-first, matching
// the snapshot delivery contract the dashboard engine expects.
func (db *DB) RecentReadings(limit int) ([]telemetry.Record, error) {
	query := `
		SELECT fields
		FROM sensor_readings
		ORDER BY received_at DESC, id DESC
		LIMIT $1
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []telemetry.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		var rec telemetry.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			// A corrupt row degrades to an empty record rather than
			// failing the whole snapshot.
			rec = telemetry.Record{}
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// InsertPrediction persists a risk prediction document
func (db *DB) InsertPrediction(p *risk.Prediction) error {
	doc, err := risk.EncodePrediction(p)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}

	query := `
		INSERT INTO risk_predictions (id, document, created_at)
		VALUES ($1, $2, $3)
	`

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = db.Exec(query, p.ID, doc, createdAt)
	return err
}

// LatestPrediction returns the newest stored prediction document, or nil
// when none exists
func (db *DB) LatestPrediction() (*risk.Prediction, error) {
	query := `
		SELECT document
		FROM risk_predictions
		ORDER BY created_at DESC
		LIMIT 1
	`

	var doc []byte
	err := db.QueryRow(query).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return risk.DecodePrediction(doc)
}
