package telemetry

import "time"

// Record is one raw sensor document as delivered by the feed. Keys vary
// between firmware versions and producers; values are numbers, strings,
// or nil. A record is never mutated after it is received.
type Record map[string]any

// TimestampAliases are the record keys a timestamp may appear under,
// in precedence order.
var TimestampAliases = []string{"timestamp", "time", "ts", "created_at"}

// Instant returns the record's normalized timestamp. The first timestamp
// alias present in the record wins; if its value cannot be parsed, the
// record has no instant.
func (r Record) Instant() (time.Time, bool) {
	for _, key := range TimestampAliases {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		return ToInstant(v)
	}
	return time.Time{}, false
}
