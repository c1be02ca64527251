package unitofwork

import (
	"context"

	"course-advisor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FaqRepository() contract.FaqRepository
	CourseRepository() contract.CourseRepository
	ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository
	AuditLogRepository() contract.AuditLogRepository
}
