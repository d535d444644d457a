package store

import (
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

// SensorReading is one stored raw sensor document. Fields are persisted
// verbatim so alias resolution happens at read time, not at write time.
type SensorReading struct {
	ID         int64
	DeviceID   string
	Location   string
	RecordedAt *time.Time // nil when the document had no parseable timestamp
	Fields     telemetry.Record
	ReceivedAt time.Time
}

// StoredPrediction is one persisted risk prediction document.
type StoredPrediction struct {
	ID        string
	Document  []byte // the prediction JSON as published
	CreatedAt time.Time
}
