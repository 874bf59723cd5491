package amqp

import (
	"time"

	"github.com/goccy/go-json"
)

// ChangeMessage announces that a ledger slot was saved. Consumers fetch the
// data they need from the shared backend; the message only says what changed.
type ChangeMessage struct {
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage describes a saved slot. Count is the number of records for
// list slots and 1 for singletons.
func NewChangeMessage(key string, value []byte) *ChangeMessage {
	return &ChangeMessage{
		Key:       key,
		Count:     recordCount(value),
		Timestamp: time.Now().UTC(),
	}
}

func recordCount(value []byte) int {
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err == nil {
		return len(items)
	}
	return 1
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
