package retrieve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"course-advisor-be/internal/entity"

	"github.com/google/uuid"
)

type fakeSearcher struct {
	collection   entity.Collection
	primary      []entity.DocumentChunk
	primaryErr   error
	pattern      []entity.DocumentChunk
	patternErr   error
	patternCalls int
}

func (s *fakeSearcher) Collection() entity.Collection { return s.collection }

func (s *fakeSearcher) SearchFullText(ctx context.Context, query string, limit int) ([]entity.DocumentChunk, error) {
	if s.primaryErr != nil {
		return nil, s.primaryErr
	}
	return s.primary, nil
}

func (s *fakeSearcher) SearchPattern(ctx context.Context, fragments []string, limit int) ([]entity.DocumentChunk, error) {
	s.patternCalls++
	if s.patternErr != nil {
		return nil, s.patternErr
	}
	return s.pattern, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func faqChunk(question, answer string) entity.DocumentChunk {
	return entity.DocumentChunk{
		OriginId:   uuid.New(),
		Collection: entity.CollectionFaq,
		Title:      question,
		Body:       answer,
	}
}

func testConfig() Config {
	return Config{
		MaxContextChars:          6000,
		PrimaryHitsPerCollection: 5,
		FallbackTriggerThreshold: 3,
	}
}

func TestRetrieveSkipsFallbackWhenPrimaryIsSufficient(t *testing.T) {
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary: []entity.DocumentChunk{
			faqChunk("What courses cover python programming?", "Python basics and advanced python courses"),
			faqChunk("How long is the python course?", "The python course runs twelve weeks"),
			faqChunk("Is python taught online?", "Yes, python classes stream live"),
		},
	}

	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, testConfig())
	result, err := r.Retrieve(context.Background(), "python course")
	if err != nil {
		t.Fatal(err)
	}

	if faq.patternCalls != 0 {
		t.Errorf("expected no fallback search, got %d calls", faq.patternCalls)
	}
	if !strings.Contains(result.Context, "=== FREQUENTLY ASKED QUESTIONS ===") {
		t.Errorf("missing collection label in context:\n%s", result.Context)
	}
}

func TestRetrieveTriggersFallbackOnThinPrimary(t *testing.T) {
	shared := faqChunk("Do you offer python courses?", "Yes, python courses run monthly")
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary:    []entity.DocumentChunk{shared},
		pattern: []entity.DocumentChunk{
			shared,
			faqChunk("What does the python course cost?", "The python course fee covers materials"),
		},
	}

	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, testConfig())
	result, err := r.Retrieve(context.Background(), "python course")
	if err != nil {
		t.Fatal(err)
	}

	if faq.patternCalls != 1 {
		t.Fatalf("expected 1 fallback call, got %d", faq.patternCalls)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("expected dedup to 2 hits, got %d", len(result.Hits))
	}
	seen := make(map[uuid.UUID]int)
	for _, h := range result.Hits {
		seen[h.Chunk.OriginId]++
	}
	if seen[shared.OriginId] != 1 {
		t.Errorf("shared origin id appears %d times", seen[shared.OriginId])
	}
}

func TestRetrieveFallbackDiscardsWeakMatches(t *testing.T) {
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		pattern: []entity.DocumentChunk{
			faqChunk("Unrelated topic entirely", "Nothing about the asked subject appears anywhere within this lengthy answer text body discussing administration building parking arrangements"),
		},
	}

	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, testConfig())
	result, err := r.Retrieve(context.Background(), "python course")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Hits) != 0 {
		t.Errorf("expected weak fallback hit to be discarded, got %d hits", len(result.Hits))
	}
	if result.Context != "" {
		t.Errorf("expected empty context, got %q", result.Context)
	}
}

func TestRetrieveDegradesFailingCollection(t *testing.T) {
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primaryErr: errors.New("connection refused"),
		patternErr: errors.New("connection refused"),
	}
	course := &fakeSearcher{
		collection: entity.CollectionCourse,
		primary: []entity.DocumentChunk{
			{OriginId: uuid.New(), Collection: entity.CollectionCourse, Title: "Python Bootcamp", Body: "Intensive python bootcamp"},
			{OriginId: uuid.New(), Collection: entity.CollectionCourse, Title: "Python for Data", Body: "Applied python for data work"},
			{OriginId: uuid.New(), Collection: entity.CollectionCourse, Title: "Advanced Python", Body: "Advanced python patterns"},
		},
	}

	r := NewRetriever([]Searcher{faq, course}, nil, nopLogger{}, testConfig())
	result, err := r.Retrieve(context.Background(), "python")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(result.Context, "FREQUENTLY ASKED") {
		t.Errorf("failed collection should be absent:\n%s", result.Context)
	}
	if !strings.Contains(result.Context, "=== COURSE CATALOG ===") {
		t.Errorf("healthy collection missing:\n%s", result.Context)
	}
}

func TestRetrieveCollectionOrderIsFixed(t *testing.T) {
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary: []entity.DocumentChunk{
			faqChunk("How do I enroll in a python course?", "Enroll in python online"),
			faqChunk("When do python courses start?", "Python courses start monthly"),
			faqChunk("Where are python classes held?", "Python classes run on campus"),
		},
	}
	course := &fakeSearcher{
		collection: entity.CollectionCourse,
		primary: []entity.DocumentChunk{
			{OriginId: uuid.New(), Collection: entity.CollectionCourse, Title: "Python Bootcamp", Body: "Intensive python course"},
			{OriginId: uuid.New(), Collection: entity.CollectionCourse, Title: "Python for Data", Body: "Applied python course"},
			{OriginId: uuid.New(), Collection: entity.CollectionCourse, Title: "Advanced Python", Body: "Expert python course"},
		},
	}

	r := NewRetriever([]Searcher{faq, course}, nil, nopLogger{}, testConfig())
	result, err := r.Retrieve(context.Background(), "python course")
	if err != nil {
		t.Fatal(err)
	}

	faqIdx := strings.Index(result.Context, "FREQUENTLY ASKED QUESTIONS")
	courseIdx := strings.Index(result.Context, "COURSE CATALOG")
	if faqIdx == -1 || courseIdx == -1 || faqIdx > courseIdx {
		t.Errorf("blocks out of priority order (faq=%d course=%d)", faqIdx, courseIdx)
	}
}

func TestRetrieveTruncatesAtLimit(t *testing.T) {
	long := strings.Repeat("python content ", 100)
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary: []entity.DocumentChunk{
			faqChunk("Tell me about python", long),
			faqChunk("More about python", long),
			faqChunk("Even more python", long),
		},
	}

	cfg := testConfig()
	cfg.MaxContextChars = 500
	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, cfg)
	result, err := r.Retrieve(context.Background(), "python")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Context) != 500 {
		t.Errorf("expected context of exactly 500 chars, got %d", len(result.Context))
	}
	if !result.Truncated {
		t.Error("expected truncated flag")
	}
}

func TestRetrieveUsesCache(t *testing.T) {
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary: []entity.DocumentChunk{
			faqChunk("What is python?", "Python is a language"),
			faqChunk("Why python?", "Python is practical"),
			faqChunk("Who teaches python?", "Our python staff"),
		},
	}
	cache := &mapCache{entries: make(map[string]interface{})}

	r := NewRetriever([]Searcher{faq}, cache, nopLogger{}, testConfig())
	first, err := r.Retrieve(context.Background(), "Python?")
	if err != nil {
		t.Fatal(err)
	}

	faq.primary = nil
	second, err := r.Retrieve(context.Background(), "  python?  ")
	if err != nil {
		t.Fatal(err)
	}
	if second.Context != first.Context {
		t.Error("expected cached result for normalized-identical query")
	}
}

type mapCache struct {
	entries map[string]interface{}
}

func (c *mapCache) Get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(key string, value interface{}) {
	c.entries[key] = value
}

type fakeSemantic struct {
	hits  []entity.ScoredChunk
	err   error
	calls int
}

func (s *fakeSemantic) SearchSimilar(ctx context.Context, query string, collection entity.Collection, limit int) ([]entity.ScoredChunk, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

func TestRetrieveSemanticWidensThinPrimary(t *testing.T) {
	shared := faqChunk("Do you offer python courses?", "Yes, python courses run monthly")
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary:    []entity.DocumentChunk{shared},
	}
	semantic := &fakeSemantic{
		hits: []entity.ScoredChunk{
			{Chunk: entity.DocumentChunk{OriginId: shared.OriginId, Collection: entity.CollectionFaq, Body: "duplicate of the primary hit"}, Score: 0.9},
			{Chunk: entity.DocumentChunk{OriginId: uuid.New(), Collection: entity.CollectionFaq, Body: "Installment payment plans are available for every track"}, Score: 0.8},
		},
	}

	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, testConfig()).WithSemantic(semantic)
	result, err := r.Retrieve(context.Background(), "python course")
	if err != nil {
		t.Fatal(err)
	}

	if semantic.calls != 1 {
		t.Fatalf("expected 1 semantic call, got %d", semantic.calls)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("expected dedup to 2 hits, got %d", len(result.Hits))
	}
	if !strings.Contains(result.Context, "Installment payment plans") {
		t.Errorf("semantic hit missing from context:\n%s", result.Context)
	}
}

func TestRetrieveSemanticSkippedWhenPrimaryIsSufficient(t *testing.T) {
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary: []entity.DocumentChunk{
			faqChunk("What courses cover python programming?", "Python basics and advanced python courses"),
			faqChunk("How long is the python course?", "The python course runs twelve weeks"),
			faqChunk("Is python taught online?", "Yes, python classes stream live"),
		},
	}
	semantic := &fakeSemantic{}

	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, testConfig()).WithSemantic(semantic)
	if _, err := r.Retrieve(context.Background(), "python course"); err != nil {
		t.Fatal(err)
	}
	if semantic.calls != 0 {
		t.Errorf("expected no semantic call, got %d", semantic.calls)
	}
}

func TestRetrieveSemanticFailureDegrades(t *testing.T) {
	shared := faqChunk("Do you offer python courses?", "Yes, python courses run monthly")
	faq := &fakeSearcher{
		collection: entity.CollectionFaq,
		primary:    []entity.DocumentChunk{shared},
	}
	semantic := &fakeSemantic{err: errors.New("embedding provider down")}

	r := NewRetriever([]Searcher{faq}, nil, nopLogger{}, testConfig()).WithSemantic(semantic)
	result, err := r.Retrieve(context.Background(), "python course")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Hits) != 1 {
		t.Errorf("expected primary hit to survive semantic failure, got %d hits", len(result.Hits))
	}
}

func TestPatternFragments(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops short tokens",
			query: "is it a python course",
			want:  []string{"python", "course"},
		},
		{
			name:  "escapes like metacharacters",
			query: "100% discount_code",
			want:  []string{`100\%`, `discount\_code`},
		},
		{
			name:  "dedupes repeated tokens",
			query: "python python python",
			want:  []string{"python"},
		},
		{
			name:  "falls back to escaped literal",
			query: "a b c",
			want:  []string{"a b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PatternFragments(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fragment %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPatternFragmentsBounded(t *testing.T) {
	query := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	got := PatternFragments(query)
	if len(got) != 10 {
		t.Errorf("expected cap of 10 alternatives, got %d", len(got))
	}
}
