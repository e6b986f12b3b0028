package amqp

import (
	"encoding/json"
	"time"
)

// IngestRequestMessage asks the worker to ingest one statement file. The
// path must be reachable from the worker; the bank selects the reader
// and dialect pair.
type IngestRequestMessage struct {
	RunID     string    `json:"run_id"`
	Path      string    `json:"path"`
	Bank      string    `json:"bank"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIngestRequestMessage creates a request for one statement file
func NewIngestRequestMessage(runID, path, bank string) *IngestRequestMessage {
	return &IngestRequestMessage{
		RunID:     runID,
		Path:      path,
		Bank:      bank,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *IngestRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// IngestRequestMessageFromJSON creates a message from JSON bytes
func IngestRequestMessageFromJSON(data []byte) (*IngestRequestMessage, error) {
	var msg IngestRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// IngestResultMessage reports the outcome of one ingest run for
// downstream consumers (dashboards, reconciliation triggers).
type IngestResultMessage struct {
	RunID     string    `json:"run_id"`
	File      string    `json:"file"`
	Bank      string    `json:"bank"`
	Rows      int       `json:"rows"`
	Inserted  int       `json:"inserted"`
	Skipped   int       `json:"skipped"`
	Dropped   int       `json:"dropped"`
	Timestamp time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes
func (m *IngestResultMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// IngestResultMessageFromJSON creates a message from JSON bytes
func IngestResultMessageFromJSON(data []byte) (*IngestResultMessage, error) {
	var msg IngestResultMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
