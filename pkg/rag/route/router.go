package route

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course-advisor-be/internal/constant"
	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/pkg/llm"

	"github.com/google/uuid"
)

// AuditSink persists one audit entry per routed request, best-effort.
type AuditSink interface {
	Persist(ctx context.Context, entry *entity.AuditLog)
}

// Request carries everything the router needs to build the provider call.
type Request struct {
	SessionId string
	Message   string
	Context   string
	History   []entity.Turn
}

// Outcome is the terminal result of one routed request.
type Outcome struct {
	Text         string
	UsedFallback bool
	Err          error
}

type Config struct {
	PrimaryTimeout  time.Duration
	FallbackEnabled bool
}

// Router calls the primary provider under a deadline and falls back to the
// secondary on recoverable failures. It emits exactly one audit entry per
// request, whatever branch terminates it.
type Router struct {
	primary  llm.LLMProvider
	fallback llm.LLMProvider
	audit    AuditSink
	log      logger.ILogger
	cfg      Config
}

func NewRouter(primary, fallback llm.LLMProvider, audit AuditSink, log logger.ILogger, cfg Config) *Router {
	return &Router{
		primary:  primary,
		fallback: fallback,
		audit:    audit,
		log:      log,
		cfg:      cfg,
	}
}

func (r *Router) Route(ctx context.Context, req Request) Outcome {
	start := time.Now()
	messages := buildMessages(req)

	// The deadline context is passed into the provider's HTTP call, so the
	// loser of the race is cancelled at the transport, not abandoned.
	primaryCtx, cancel := context.WithTimeout(ctx, r.cfg.PrimaryTimeout)
	defer cancel()

	text, primaryErr := r.primary.Chat(primaryCtx, messages)
	if primaryErr == nil {
		r.emit(ctx, req, start, entity.AuditStatusSuccess, r.primary.Name(), text, nil, nil)
		return Outcome{Text: text}
	}

	if llm.IsCancellation(primaryErr) {
		r.emit(ctx, req, start, entity.AuditStatusCancelled, r.primary.Name(), "", primaryErr, nil)
		return Outcome{Err: primaryErr}
	}

	if errors.Is(primaryErr, llm.ErrNotConfigured) {
		r.log.Error("router", "primary provider not configured", map[string]interface{}{
			"provider": r.primary.Name(),
		})
		r.emit(ctx, req, start, entity.AuditStatusError, r.primary.Name(), "", primaryErr, nil)
		return Outcome{Err: primaryErr}
	}

	if !r.cfg.FallbackEnabled || r.fallback == nil || !llm.IsRecoverable(primaryErr) {
		r.emit(ctx, req, start, entity.AuditStatusError, r.primary.Name(), "", primaryErr, nil)
		return Outcome{Err: primaryErr}
	}

	r.log.Warn("router", "primary failed, attempting fallback", map[string]interface{}{
		"primary":  r.primary.Name(),
		"fallback": r.fallback.Name(),
		"kind":     llm.FailureKind(primaryErr),
	})

	// The primary's failure reason travels in audit metadata only; it never
	// reaches the caller.
	meta := map[string]interface{}{
		"primary_provider": r.primary.Name(),
		"primary_error":    primaryErr.Error(),
		"primary_kind":     llm.FailureKind(primaryErr),
	}

	text, fallbackErr := r.fallback.Chat(ctx, messages)
	if fallbackErr == nil {
		r.emit(ctx, req, start, entity.AuditStatusFallbackSuccess, r.fallback.Name(), text, nil, meta)
		return Outcome{Text: text, UsedFallback: true}
	}

	if llm.IsCancellation(fallbackErr) {
		r.emit(ctx, req, start, entity.AuditStatusCancelled, r.fallback.Name(), "", fallbackErr, meta)
		return Outcome{Err: fallbackErr}
	}

	r.emit(ctx, req, start, entity.AuditStatusError, r.fallback.Name(), "", fallbackErr, meta)
	return Outcome{Err: fallbackErr}
}

func (r *Router) emit(ctx context.Context, req Request, start time.Time, status, provider, response string, cause error, meta map[string]interface{}) {
	entry := &entity.AuditLog{
		Id:           uuid.New(),
		UserId:       req.SessionId,
		RequestType:  "chat",
		ProviderUsed: provider,
		Status:       status,
		Prompt:       req.Message,
		Response:     response,
		Metadata:     meta,
		LatencyMs:    time.Since(start).Milliseconds(),
		CreatedAt:    time.Now(),
	}
	if cause != nil {
		entry.ErrorDetail = fmt.Sprintf("%s: %s", llm.FailureKind(cause), cause.Error())
	}
	if r.audit != nil {
		// Persist must never block or fail the response path; sinks handle
		// their own errors.
		r.audit.Persist(context.WithoutCancel(ctx), entry)
	}
}

func buildMessages(req Request) []llm.Message {
	system := constant.AdvisorSystemPromptV1
	if req.Context != "" {
		system = fmt.Sprintf("%s\n\n<reference_material>\n%s\n</reference_material>", system, req.Context)
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, turn := range req.History {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: constant.ChatRoleUser, Content: req.Message})
	return messages
}
