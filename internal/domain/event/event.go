package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Subject   string                 `json:"subject"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent creates an event about subject (an entity id or storage key)
func NewEvent(eventType Type, subject string, payload map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// StorageChanged announces that the collection under key was rewritten
func StorageChanged(key string) *Event {
	return NewEvent(TypeStorageChanged, key, nil)
}

// WithPayload returns a copy of the event with key set in the payload
func (e *Event) WithPayload(key string, value interface{}) *Event {
	payload := make(map[string]interface{}, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value

	cp := *e
	cp.Payload = payload
	return &cp
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if s, ok := e.Payload[key].(string); ok {
		return s
	}
	return ""
}

// GetPayloadFloat retrieves a numeric value from the payload
func (e *Event) GetPayloadFloat(key string) float64 {
	switch v := e.Payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
