package audit

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/repository/unitofwork"
	"course-advisor-be/pkg/events"
	"course-advisor-be/pkg/nats"
)

// Sink persists audit entries to Postgres and mirrors them onto the event
// bus. Both writes are best-effort: a failure is logged and swallowed so the
// response path is never blocked by bookkeeping.
type Sink struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *nats.Publisher
	log        logger.ILogger
}

func NewSink(uowFactory unitofwork.RepositoryFactory, publisher *nats.Publisher, log logger.ILogger) *Sink {
	return &Sink{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

func (s *Sink) Persist(ctx context.Context, entry *entity.AuditLog) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditLogRepository().Create(ctx, entry); err != nil {
		s.log.Error("audit", "failed to persist audit entry", map[string]interface{}{
			"session_id": entry.UserId,
			"status":     entry.Status,
			"error":      err.Error(),
		})
	}

	if s.publisher == nil {
		return
	}
	event := events.NewChatAuditedEvent(entry.UserId, entry.ProviderUsed, entry.Status, entry.LatencyMs)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("audit", "failed to publish audit event", map[string]interface{}{
			"session_id": entry.UserId,
			"error":      err.Error(),
		})
	}
}
