package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       string         `gorm:"type:varchar(100);index"`
	RequestType  string         `gorm:"type:varchar(50)"`
	ProviderUsed string         `gorm:"type:varchar(50)"`
	Status       string         `gorm:"type:varchar(30);index"`
	Prompt       string         `gorm:"type:text"`
	Response     string         `gorm:"type:text"`
	ErrorDetail  string         `gorm:"type:text"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	LatencyMs    int64
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
