package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/technova/airdash-server/internal/telemetry"
)

// MessageType represents the type of message
type MessageType string

const (
	// Device to Server
	MsgTypeIdentify  MessageType = "identify"
	MsgTypeReadings  MessageType = "readings"
	MsgTypeKeepalive MessageType = "keepalive"

	// Server to Device
	MsgTypeAck MessageType = "ack"
)

// BaseMessage is the common structure for all messages
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// IdentifyMessage is sent by the device on connection
type IdentifyMessage struct {
	Type     MessageType `json:"type"`
	DeviceID string      `json:"device_id"`
	Location string      `json:"location,omitempty"`
}

// ReadingsMessage carries one raw sensor document. The field map is kept
// open: keys vary between firmware versions and are resolved downstream
// through the channel alias lists.
type ReadingsMessage struct {
	Type MessageType      `json:"type"`
	Data telemetry.Record `json:"data"`
}

// KeepaliveMessage is sent by the device periodically while idle
type KeepaliveMessage struct {
	Type MessageType `json:"type"`
}

// AckMessage is sent by the server in response to messages
type AckMessage struct {
	Type   MessageType `json:"type"`
	Status string      `json:"status"`
}

// AckStatus constants
const (
	AckStatusIdentified = "identified"
	AckStatusAlive      = "alive"
	AckStatusError      = "error"
)

// ParseMessage parses a JSON line into the appropriate message type
func ParseMessage(data []byte) (interface{}, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch base.Type {
	case MsgTypeIdentify:
		var msg IdentifyMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("invalid identify message: %w", err)
		}
		if err := validateIdentify(&msg); err != nil {
			return nil, err
		}
		return &msg, nil

	case MsgTypeReadings:
		var msg ReadingsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("invalid readings message: %w", err)
		}
		if err := validateReadings(&msg); err != nil {
			return nil, err
		}
		return &msg, nil

	case MsgTypeKeepalive:
		var msg KeepaliveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("invalid keepalive message: %w", err)
		}
		return &msg, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", base.Type)
	}
}

// validateIdentify validates an identify message
func validateIdentify(msg *IdentifyMessage) error {
	if msg.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}
	return nil
}

// validateReadings validates a readings message. The content of the
// field map is deliberately not validated here: malformed fields resolve
// to absence downstream instead of being rejected at the edge.
func validateReadings(msg *ReadingsMessage) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("data is required")
	}
	return nil
}

// EncodeMessage encodes a message to JSON
func EncodeMessage(msg interface{}) ([]byte, error) {
	return json.Marshal(msg)
}

// NewAckMessage creates a new acknowledgment message
func NewAckMessage(status string) *AckMessage {
	return &AckMessage{
		Type:   MsgTypeAck,
		Status: status,
	}
}
