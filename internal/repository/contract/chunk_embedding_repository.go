package contract

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunkEmbedding pairs an embedding row with its cosine similarity.
type ScoredChunkEmbedding struct {
	Embedding  *entity.ChunkEmbedding
	Similarity float64
}

type ChunkEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ChunkEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	Update(ctx context.Context, embedding *entity.ChunkEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOriginId(ctx context.Context, originId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, collection entity.Collection, threshold float64) ([]*ScoredChunkEmbedding, error)
}
