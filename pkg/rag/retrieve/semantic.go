package retrieve

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/contract"
	"course-advisor-be/pkg/embedding"
)

// Cosine similarity below this is treated as unrelated content.
const minSemanticSimilarity = 0.4

// SemanticSearcher resolves nearest chunk embeddings for a query. It widens
// thin collections alongside the pattern fallback.
type SemanticSearcher interface {
	SearchSimilar(ctx context.Context, query string, collection entity.Collection, limit int) ([]entity.ScoredChunk, error)
}

type embeddingSearcher struct {
	provider embedding.EmbeddingProvider
	repo     contract.ChunkEmbeddingRepository
}

func NewEmbeddingSearcher(provider embedding.EmbeddingProvider, repo contract.ChunkEmbeddingRepository) SemanticSearcher {
	return &embeddingSearcher{provider: provider, repo: repo}
}

func (s *embeddingSearcher) SearchSimilar(ctx context.Context, query string, collection entity.Collection, limit int) ([]entity.ScoredChunk, error) {
	res, err := s.provider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.SearchSimilarWithScore(ctx, res.Embedding.Values, limit, collection, minSemanticSimilarity)
	if err != nil {
		return nil, err
	}

	hits := make([]entity.ScoredChunk, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, entity.ScoredChunk{
			Chunk: entity.DocumentChunk{
				OriginId:   row.Embedding.OriginId,
				Collection: row.Embedding.Collection,
				Body:       row.Embedding.Document,
			},
			Score: row.Similarity,
		})
	}
	return hits, nil
}
