package mapper

import (
	"encoding/json"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/model"

	"gorm.io/datatypes"
)

type AuditLogMapper struct{}

func NewAuditLogMapper() *AuditLogMapper {
	return &AuditLogMapper{}
}

func (m *AuditLogMapper) ToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.AuditLog{
		Id:           a.Id,
		UserId:       a.UserId,
		RequestType:  a.RequestType,
		ProviderUsed: a.ProviderUsed,
		Status:       a.Status,
		Prompt:       a.Prompt,
		Response:     a.Response,
		ErrorDetail:  a.ErrorDetail,
		Metadata:     metadata,
		LatencyMs:    a.LatencyMs,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AuditLogMapper) ToModel(a *entity.AuditLog) *model.AuditLog {
	if a == nil {
		return nil
	}

	var metadata datatypes.JSON
	if a.Metadata != nil {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.AuditLog{
		Id:           a.Id,
		UserId:       a.UserId,
		RequestType:  a.RequestType,
		ProviderUsed: a.ProviderUsed,
		Status:       a.Status,
		Prompt:       a.Prompt,
		Response:     a.Response,
		ErrorDetail:  a.ErrorDetail,
		Metadata:     metadata,
		LatencyMs:    a.LatencyMs,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AuditLogMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, a := range logs {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
