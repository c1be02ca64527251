package route

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-advisor-be/internal/entity"
	"course-advisor-be/pkg/llm"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
	// block makes the provider wait for ctx cancellation and return the
	// classified context error, simulating a slow upstream.
	block bool
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	if p.block {
		<-ctx.Done()
		return "", llm.ClassifyCallError(ctx, p.name, ctx.Err())
	}
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *stubProvider) Name() string { return p.name }

type captureSink struct {
	entries []*entity.AuditLog
}

func (s *captureSink) Persist(ctx context.Context, entry *entity.AuditLog) {
	s.entries = append(s.entries, entry)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestRouter(primary, fallback llm.LLMProvider, sink AuditSink, cfg Config) *Router {
	return NewRouter(primary, fallback, sink, nopLogger{}, cfg)
}

func testRequest() Request {
	return Request{
		SessionId: "s1",
		Message:   "what is the networking track fee?",
		Context:   "=== FREQUENTLY ASKED QUESTIONS ===\n\nQ: fee?\nA: 500",
	}
}

func TestRoutePrimarySuccessSkipsFallback(t *testing.T) {
	primary := &stubProvider{name: "gemini", text: "the fee is 500"}
	fallback := &stubProvider{name: "ollama", text: "unused"}
	sink := &captureSink{}

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: time.Second, FallbackEnabled: true})
	out := r.Route(context.Background(), testRequest())

	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.Text != "the fee is 500" || out.UsedFallback {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback must not be called, got %d calls", fallback.calls)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected exactly 1 audit entry, got %d", len(sink.entries))
	}
	if sink.entries[0].Status != entity.AuditStatusSuccess || sink.entries[0].ProviderUsed != "gemini" {
		t.Errorf("bad audit entry: %+v", sink.entries[0])
	}
}

func TestRouteTimeoutTriggersFallbackOnce(t *testing.T) {
	primary := &stubProvider{name: "gemini", block: true}
	fallback := &stubProvider{name: "ollama", text: "fallback answer"}
	sink := &captureSink{}

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: 20 * time.Millisecond, FallbackEnabled: true})
	out := r.Route(context.Background(), testRequest())

	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if !out.UsedFallback || out.Text != "fallback answer" {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if fallback.calls != 1 {
		t.Errorf("expected exactly 1 fallback call, got %d", fallback.calls)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected exactly 1 audit entry, got %d", len(sink.entries))
	}
	entry := sink.entries[0]
	if entry.Status != entity.AuditStatusFallbackSuccess || entry.ProviderUsed != "ollama" {
		t.Errorf("bad audit entry: %+v", entry)
	}
	if entry.Metadata["primary_kind"] != llm.FailureTimeout {
		t.Errorf("primary failure reason missing from metadata: %+v", entry.Metadata)
	}
}

func TestRouteUnavailablePrimaryFallsBack(t *testing.T) {
	primary := &stubProvider{
		name: "gemini",
		err:  llm.NewUpstreamError("gemini", llm.FailureUnavailable, errors.New("connection refused")),
	}
	fallback := &stubProvider{name: "ollama", text: "fallback answer"}
	sink := &captureSink{}

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: time.Second, FallbackEnabled: true})
	out := r.Route(context.Background(), testRequest())

	if out.Err != nil || !out.UsedFallback {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	entry := sink.entries[0]
	if entry.Status != entity.AuditStatusFallbackSuccess {
		t.Errorf("expected fallback-success status, got %s", entry.Status)
	}
	if entry.Metadata["primary_error"] == nil {
		t.Error("primary error must be recorded as metadata")
	}
}

func TestRouteFallbackDisabledReturnsPrimaryError(t *testing.T) {
	primaryErr := llm.NewUpstreamError("gemini", llm.FailureUnavailable, errors.New("connection refused"))
	primary := &stubProvider{name: "gemini", err: primaryErr}
	fallback := &stubProvider{name: "ollama", text: "unused"}
	sink := &captureSink{}

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: time.Second, FallbackEnabled: false})
	out := r.Route(context.Background(), testRequest())

	if !errors.Is(out.Err, primaryErr) {
		t.Errorf("primary error must be re-raised unchanged, got %v", out.Err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback must not be called, got %d calls", fallback.calls)
	}
	if len(sink.entries) != 1 || sink.entries[0].Status != entity.AuditStatusError {
		t.Errorf("expected single ERROR audit entry, got %+v", sink.entries)
	}
}

func TestRouteNotConfiguredFailsFast(t *testing.T) {
	primary := &stubProvider{name: "gemini", err: llm.ErrNotConfigured}
	fallback := &stubProvider{name: "ollama", text: "unused"}
	sink := &captureSink{}

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: time.Second, FallbackEnabled: true})
	out := r.Route(context.Background(), testRequest())

	if !errors.Is(out.Err, llm.ErrNotConfigured) {
		t.Fatalf("expected configuration error, got %v", out.Err)
	}
	if fallback.calls != 0 {
		t.Errorf("configuration errors must not trigger fallback, got %d calls", fallback.calls)
	}
}

func TestRouteCallerCancellationBypassesFallback(t *testing.T) {
	primary := &stubProvider{name: "gemini", block: true}
	fallback := &stubProvider{name: "ollama", text: "unused"}
	sink := &captureSink{}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: time.Second, FallbackEnabled: true})
	out := r.Route(ctx, testRequest())

	if !llm.IsCancellation(out.Err) {
		t.Fatalf("expected cancellation, got %v", out.Err)
	}
	if fallback.calls != 0 {
		t.Errorf("cancellation must bypass fallback, got %d calls", fallback.calls)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("expected exactly 1 audit entry, got %d", len(sink.entries))
	}
	if sink.entries[0].Status != entity.AuditStatusCancelled {
		t.Errorf("cancellation must not be audited as ERROR, got %s", sink.entries[0].Status)
	}
}

func TestRouteBothProvidersFailing(t *testing.T) {
	primary := &stubProvider{
		name: "gemini",
		err:  llm.NewUpstreamError("gemini", llm.FailureUnavailable, errors.New("connection refused")),
	}
	fallbackErr := llm.NewUpstreamError("ollama", llm.FailureUnavailable, errors.New("connection refused"))
	fallback := &stubProvider{name: "ollama", err: fallbackErr}
	sink := &captureSink{}

	r := newTestRouter(primary, fallback, sink, Config{PrimaryTimeout: time.Second, FallbackEnabled: true})
	out := r.Route(context.Background(), testRequest())

	if !errors.Is(out.Err, fallbackErr) {
		t.Errorf("expected fallback error surfaced, got %v", out.Err)
	}
	if len(sink.entries) != 1 || sink.entries[0].Status != entity.AuditStatusError {
		t.Errorf("expected single ERROR entry, got %+v", sink.entries)
	}
	if sink.entries[0].Metadata["primary_error"] == nil {
		t.Error("primary failure must survive in metadata when fallback also fails")
	}
}

func TestRouteMessagesIncludeContextAndHistory(t *testing.T) {
	req := testRequest()
	req.History = []entity.Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	messages := buildMessages(req)
	if len(messages) != 4 {
		t.Fatalf("expected system + 2 history + user, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("first message must be system, got %s", messages[0].Role)
	}
	if messages[3].Content != req.Message {
		t.Errorf("last message must be the user question")
	}
}
