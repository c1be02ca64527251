package retrieve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/repository/specification"
	"course-advisor-be/pkg/rag/scoring"

	"github.com/google/uuid"
)

const (
	// Fallback hits scoring at or below this are noise, not matches.
	minFallbackScore = 0.1
	// Cap on OR-ed pattern alternatives.
	maxPatternFragments = 10
)

// Config bounds the retrieval pipeline.
type Config struct {
	MaxContextChars          int
	PrimaryHitsPerCollection int
	FallbackTriggerThreshold int
}

// Result is an assembled grounding context plus the scores that produced it.
type Result struct {
	Context   string
	Truncated bool
	TopScore  float64
	Hits      []entity.ScoredChunk
}

// Cache memoizes results for identical queries.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

// Retriever assembles a bounded grounding context from the configured
// collections. Searchers must be given in context priority order.
type Retriever struct {
	searchers []Searcher
	semantic  SemanticSearcher
	cache     Cache
	log       logger.ILogger
	cfg       Config
}

func NewRetriever(searchers []Searcher, cache Cache, log logger.ILogger, cfg Config) *Retriever {
	return &Retriever{
		searchers: searchers,
		cache:     cache,
		log:       log,
		cfg:       cfg,
	}
}

// WithSemantic enables the embedding-based widening stage for thin
// collections. Without it the retriever is purely lexical.
func (r *Retriever) WithSemantic(semantic SemanticSearcher) *Retriever {
	r.semantic = semantic
	return r
}

// Retrieve runs primary search per collection, falls back to pattern search
// for thin collections, merges, formats labeled blocks and truncates. A
// backend failure in one collection degrades that collection to empty rather
// than failing the whole retrieval.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(query))
	if r.cache != nil {
		if x, found := r.cache.Get(cacheKey); found {
			if cached, ok := x.(*Result); ok {
				return cached, nil
			}
		}
	}

	var blocks []string
	var allHits []entity.ScoredChunk
	topScore := 0.0

	for _, searcher := range r.searchers {
		hits := r.retrieveCollection(ctx, searcher, query)
		if len(hits) == 0 {
			continue
		}

		allHits = append(allHits, hits...)
		for _, h := range hits {
			if h.Score > topScore {
				topScore = h.Score
			}
		}
		blocks = append(blocks, formatBlock(searcher.Collection(), hits))
	}

	result := &Result{
		Context:  strings.Join(blocks, "\n\n"),
		TopScore: topScore,
		Hits:     allHits,
	}

	if r.cfg.MaxContextChars > 0 && len(result.Context) > r.cfg.MaxContextChars {
		result.Context = result.Context[:r.cfg.MaxContextChars]
		result.Truncated = true
		r.log.Warn("retriever", "context truncated", map[string]interface{}{
			"query":     query,
			"max_chars": r.cfg.MaxContextChars,
			"hits":      len(allHits),
		})
	}

	if r.cache != nil {
		r.cache.Set(cacheKey, result)
	}
	return result, nil
}

func (r *Retriever) retrieveCollection(ctx context.Context, searcher Searcher, query string) []entity.ScoredChunk {
	collection := searcher.Collection()

	primary, err := searcher.SearchFullText(ctx, query, r.cfg.PrimaryHitsPerCollection)
	if err != nil {
		r.log.Warn("retriever", "primary search failed, degrading collection", map[string]interface{}{
			"collection": string(collection),
			"error":      err.Error(),
		})
		primary = nil
	}

	merged := make([]entity.ScoredChunk, 0, len(primary))
	seen := make(map[uuid.UUID]bool, len(primary))
	for _, chunk := range primary {
		merged = append(merged, entity.ScoredChunk{
			Chunk: chunk,
			Score: scoring.Score(query, chunk.SearchText()),
		})
		seen[chunk.OriginId] = true
	}

	if len(primary) < r.cfg.FallbackTriggerThreshold {
		for _, scored := range r.fallbackSearch(ctx, searcher, query) {
			if seen[scored.Chunk.OriginId] {
				continue
			}
			merged = append(merged, scored)
			seen[scored.Chunk.OriginId] = true
		}
		for _, scored := range r.semanticSearch(ctx, collection, query) {
			if seen[scored.Chunk.OriginId] {
				continue
			}
			merged = append(merged, scored)
			seen[scored.Chunk.OriginId] = true
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > r.cfg.PrimaryHitsPerCollection {
		merged = merged[:r.cfg.PrimaryHitsPerCollection]
	}
	return merged
}

func (r *Retriever) fallbackSearch(ctx context.Context, searcher Searcher, query string) []entity.ScoredChunk {
	fragments := PatternFragments(query)
	candidates, err := searcher.SearchPattern(ctx, fragments, r.cfg.PrimaryHitsPerCollection*2)
	if err != nil {
		r.log.Warn("retriever", "fallback search failed, degrading collection", map[string]interface{}{
			"collection": string(searcher.Collection()),
			"error":      err.Error(),
		})
		return nil
	}

	scored := make([]entity.ScoredChunk, 0, len(candidates))
	for _, chunk := range candidates {
		score := scoring.Score(query, chunk.SearchText())
		if score <= minFallbackScore {
			continue
		}
		scored = append(scored, entity.ScoredChunk{Chunk: chunk, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (r *Retriever) semanticSearch(ctx context.Context, collection entity.Collection, query string) []entity.ScoredChunk {
	if r.semantic == nil {
		return nil
	}

	hits, err := r.semantic.SearchSimilar(ctx, query, collection, r.cfg.PrimaryHitsPerCollection)
	if err != nil {
		r.log.Warn("retriever", "semantic search failed, degrading collection", map[string]interface{}{
			"collection": string(collection),
			"error":      err.Error(),
		})
		return nil
	}
	return hits
}

// PatternFragments builds the escaped OR-alternatives for fallback pattern
// search: query tokens longer than 2 characters, capped, each escaped so user
// input matches literally. An unusable query falls back to its escaped whole.
func PatternFragments(query string) []string {
	var fragments []string
	seen := make(map[string]bool)

	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,?!;:()[]{}'\"")
		if len(word) <= 2 || seen[word] {
			continue
		}
		seen[word] = true
		fragments = append(fragments, specification.EscapeLike(word))
		if len(fragments) == maxPatternFragments {
			break
		}
	}

	if len(fragments) == 0 {
		return []string{specification.EscapeLike(strings.TrimSpace(query))}
	}
	return fragments
}

func formatBlock(collection entity.Collection, hits []entity.ScoredChunk) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("=== %s ===", collection.Label()))
	for _, h := range hits {
		b.WriteString("\n\n")
		b.WriteString(h.Chunk.ContextBlock())
	}
	return b.String()
}
