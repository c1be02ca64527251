package service

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"course-advisor-be/internal/constant"
	"course-advisor-be/internal/dto"
	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/repository/memory"
	"course-advisor-be/pkg/rag/response"
	"course-advisor-be/pkg/rag/retrieve"
	"course-advisor-be/pkg/rag/route"
	"course-advisor-be/pkg/usage"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage      = errors.New("message must not be empty")
	ErrDailyLimitReached = errors.New("daily usage limit reached")
)

// IAdvisorService defines the advisor chat service interface
type IAdvisorService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error)
}

// advisorService runs the full answer pipeline: quota check, retrieval,
// provider routing, normalization and memory bookkeeping.
type advisorService struct {
	retriever   *retrieve.Retriever
	router      *route.Router
	normalizer  *response.Normalizer
	historyRepo *memory.HistoryRepository
	usage       *usage.Tracker
	log         logger.ILogger
	ragLogger   *log.Logger
}

func NewAdvisorService(
	retriever *retrieve.Retriever,
	router *route.Router,
	normalizer *response.Normalizer,
	historyRepo *memory.HistoryRepository,
	usageTracker *usage.Tracker,
	appLogger logger.ILogger,
) IAdvisorService {
	return &advisorService{
		retriever:   retriever,
		router:      router,
		normalizer:  normalizer,
		historyRepo: historyRepo,
		usage:       usageTracker,
		log:         appLogger,
		ragLogger:   initRagLogger(),
	}
}

// initRagLogger opens the high-volume diagnostics log kept out of the main
// application log.
func initRagLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "rag_advisor.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (s *advisorService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	if !s.usage.Allow(ctx, sessionId) {
		s.log.Warn("advisor", "daily limit reached", map[string]interface{}{
			"session_id": sessionId,
		})
		return nil, ErrDailyLimitReached
	}

	retrieval, err := s.retriever.Retrieve(ctx, message)
	if err != nil {
		// Retrieval is soft: answer without grounding rather than failing.
		s.log.Warn("advisor", "retrieval failed, continuing without context", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		retrieval = &retrieve.Result{}
	}
	s.ragLogger.Printf("session=%s hits=%d top_score=%.3f truncated=%t query=%q",
		sessionId, len(retrieval.Hits), retrieval.TopScore, retrieval.Truncated, message)

	history := s.historyRepo.History(sessionId)

	outcome := s.router.Route(ctx, route.Request{
		SessionId: sessionId,
		Message:   message,
		Context:   retrieval.Context,
		History:   history,
	})
	if outcome.Err != nil {
		return nil, outcome.Err
	}

	scores := make([]float64, 0, len(retrieval.Hits))
	for _, hit := range retrieval.Hits {
		scores = append(scores, hit.Score)
	}
	normalized := s.normalizer.Normalize(outcome.Text, scores)

	now := time.Now()
	s.historyRepo.Append(sessionId, entity.Turn{Role: constant.ChatRoleUser, Content: message, At: now})
	s.historyRepo.Append(sessionId, entity.Turn{Role: constant.ChatRoleAssistant, Content: normalized.Text, At: now})

	return &dto.ChatResponse{
		Text:         normalized.Text,
		UsedFallback: outcome.UsedFallback,
		SessionId:    sessionId,
		Confidence:   string(normalized.Confidence),
	}, nil
}

func (s *advisorService) GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	turns := s.historyRepo.History(sessionId)

	res := &dto.ChatHistoryResponse{
		SessionId: sessionId,
		Turns:     make([]dto.HistoryTurnResponse, len(turns)),
	}
	for i, turn := range turns {
		res.Turns[i] = dto.HistoryTurnResponse{
			Role:    turn.Role,
			Content: turn.Content,
			At:      turn.At,
		}
	}
	return res, nil
}
