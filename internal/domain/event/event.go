package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// Event represents a domain event emitted by the workflow services.
// Events are side channels only: the approval transitions themselves are
// synchronous, events drive async work such as dossier summarization.
type Event struct {
	ID            string                 `json:"id"`
	Type          Type                   `json:"type"`
	Kind          workflow.Kind          `json:"workflow_kind,omitempty"`
	InstanceID    int64                  `json:"instance_id"`
	Payload       map[string]interface{} `json:"payload"`
	Timestamp     time.Time              `json:"timestamp"`
	CorrelationID string                 `json:"correlation_id"`
}

// NewEvent creates a new domain event with a generated ID and timestamp
func NewEvent(eventType Type, kind workflow.Kind, instanceID int64, payload map[string]interface{}) *Event {
	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Kind:          kind,
		InstanceID:    instanceID,
		Payload:       payload,
		Timestamp:     time.Now(),
		CorrelationID: uuid.NewString(),
	}
}

// NewEventWithCorrelation creates an event linked to a correlation chain
func NewEventWithCorrelation(eventType Type, kind workflow.Kind, instanceID int64, payload map[string]interface{}, correlationID string) *Event {
	e := NewEvent(eventType, kind, instanceID, payload)
	e.CorrelationID = correlationID
	return e
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// GetPayloadInt retrieves an int64 value from the payload
func (e *Event) GetPayloadInt(key string) int64 {
	if val, ok := e.Payload[key]; ok {
		switch v := val.(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case float64:
			return int64(v)
		}
	}
	return 0
}

// GetPayloadBool retrieves a bool value from the payload
func (e *Event) GetPayloadBool(key string) bool {
	if val, ok := e.Payload[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}
