package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuditStatusSuccess         = "SUCCESS"
	AuditStatusFallbackSuccess = "FALLBACK_SUCCESS"
	AuditStatusError           = "ERROR"
	AuditStatusCancelled       = "CANCELLED"
)

// AuditLog records exactly one entry per routed request.
type AuditLog struct {
	Id           uuid.UUID
	UserId       string
	RequestType  string
	ProviderUsed string
	Status       string
	Prompt       string
	Response     string
	ErrorDetail  string
	Metadata     map[string]interface{}
	LatencyMs    int64
	CreatedAt    time.Time
}
