package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChunkEmbedding is the semantic index entry for one document chunk.
type ChunkEmbedding struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginId   uuid.UUID `gorm:"type:uuid;index"`
	Collection Collection
	Document   string
	Values     []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
