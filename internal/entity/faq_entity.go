package entity

import (
	"time"

	"github.com/google/uuid"
)

type Faq struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Question  string
	Answer    string
	Category  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Chunk converts the FAQ into its retrieval view.
func (f *Faq) Chunk() DocumentChunk {
	return DocumentChunk{
		OriginId:   f.Id,
		Collection: CollectionFaq,
		Title:      f.Question,
		Body:       f.Answer,
	}
}
