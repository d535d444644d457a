package protocol

import (
	"testing"
	"time"

	"github.com/technova/airdash-server/internal/telemetry"
)

func TestParseMessage_Identify(t *testing.T) {
	line := `{"type":"identify","device_id":"esp32-01","location":"living room"}`

	msg, err := ParseMessage([]byte(line))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	identify, ok := msg.(*IdentifyMessage)
	if !ok {
		t.Fatalf("Expected IdentifyMessage, got %T", msg)
	}
	if identify.DeviceID != "esp32-01" {
		t.Errorf("Expected device esp32-01, got %s", identify.DeviceID)
	}
}

func TestParseMessage_IdentifyMissingDevice(t *testing.T) {
	line := `{"type":"identify","location":"kitchen"}`

	if _, err := ParseMessage([]byte(line)); err == nil {
		t.Error("Expected error for missing device_id")
	}
}

func TestParseMessage_Readings(t *testing.T) {
	line := `{"type":"readings","data":{"temperature":21.5,"co2_ppm":800,"weird_key":"x"}}`

	msg, err := ParseMessage([]byte(line))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	readings, ok := msg.(*ReadingsMessage)
	if !ok {
		t.Fatalf("Expected ReadingsMessage, got %T", msg)
	}
	// Unknown keys pass through untouched.
	if _, ok := readings.Data["weird_key"]; !ok {
		t.Error("Expected open field map to keep unknown keys")
	}
	if v, ok := telemetry.Resolve(readings.Data, telemetry.ChannelCO2.Aliases()); !ok || v != 800 {
		t.Errorf("Expected co2 800, got %v (ok=%v)", v, ok)
	}
}

func TestParseMessage_ReadingsEmptyData(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"type":"readings","data":{}}`)); err == nil {
		t.Error("Expected error for empty data")
	}
}

func TestParseMessage_Keepalive(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"keepalive"}`))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}
	if _, ok := msg.(*KeepaliveMessage); !ok {
		t.Fatalf("Expected KeepaliveMessage, got %T", msg)
	}
}

func TestParseMessage_Unknown(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"type":"reboot"}`)); err == nil {
		t.Error("Expected error for unknown message type")
	}
	if _, err := ParseMessage([]byte(`not json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestReadingMessageRoundTrip(t *testing.T) {
	msg := &ReadingMessage{
		ConnectionID: "c1",
		DeviceID:     "esp32-01",
		Location:     "bedroom",
		ReceivedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Fields:       telemetry.Record{"pm25": 14.0, "timestamp": "2026-03-01T12:00:00Z"},
	}

	data, err := EncodeReadingMessage(msg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := DecodeReadingMessage(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.DeviceID != "esp32-01" {
		t.Errorf("Expected device esp32-01, got %s", decoded.DeviceID)
	}
	if v, ok := telemetry.Resolve(decoded.Fields, telemetry.ChannelPM25.Aliases()); !ok || v != 14 {
		t.Errorf("Expected pm25 14, got %v (ok=%v)", v, ok)
	}
}
