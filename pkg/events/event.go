package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_AUDITED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeChatAudited      = "CHAT_AUDITED"
	TypeDocumentUpserted = "DOCUMENT_UPSERTED"
)

// NewChatAuditedEvent mirrors one chat audit record onto the event bus so
// downstream analytics can consume it without touching the database.
func NewChatAuditedEvent(sessionId, provider, status string, latencyMs int64) Event {
	return BaseEvent{
		Type: TypeChatAudited,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"provider":   provider,
			"status":     status,
			"latency_ms": latencyMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentUpsertedEvent announces a seeded or updated document so the
// embedding consumer refreshes its chunk index.
func NewDocumentUpsertedEvent(collection, originId string) Event {
	return BaseEvent{
		Type: TypeDocumentUpserted,
		Data: map[string]interface{}{
			"collection": collection,
			"origin_id":  originId,
		},
		OccurredAt: time.Now(),
	}
}
