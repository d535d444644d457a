package protocol

import (
	"encoding/json"
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

// ReadingMessage is the internal message format for the readings topic
type ReadingMessage struct {
	ConnectionID string           `json:"connection_id,omitempty"`
	DeviceID     string           `json:"device_id"`
	Location     string           `json:"location,omitempty"`
	ReceivedAt   time.Time        `json:"received_at"`
	Fields       telemetry.Record `json:"fields"`
}

// EncodeReadingMessage encodes a ReadingMessage to JSON
func EncodeReadingMessage(msg *ReadingMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeReadingMessage decodes JSON to ReadingMessage
func DecodeReadingMessage(data []byte) (*ReadingMessage, error) {
	var msg ReadingMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
