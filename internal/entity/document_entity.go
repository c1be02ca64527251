package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Collection identifies a content store. Search and formatting dispatch on it
// instead of probing arbitrary fields at runtime.
type Collection string

const (
	CollectionFaq    Collection = "faq"
	CollectionCourse Collection = "course"
)

// DocumentChunk is the collection-agnostic retrieval view of a stored record.
// The core never mutates chunks; the ingestion side owns them.
type DocumentChunk struct {
	OriginId   uuid.UUID
	Collection Collection
	Title      string
	Body       string
}

// ScoredChunk pairs a chunk with its relevance score in [0,1].
// A score of zero means "excluded from context".
type ScoredChunk struct {
	Chunk DocumentChunk
	Score float64
}

// SearchText returns the concatenated text fields used for overlap scoring.
func (c DocumentChunk) SearchText() string {
	return c.Title + "\n" + c.Body
}

// ContextBlock renders the chunk as one labeled entry inside its collection's
// context section.
func (c DocumentChunk) ContextBlock() string {
	// Embedding-sourced chunks carry pre-rendered text and no separate title.
	if c.Title == "" {
		return strings.TrimSpace(c.Body)
	}
	switch c.Collection {
	case CollectionFaq:
		return fmt.Sprintf("Q: %s\nA: %s", c.Title, c.Body)
	case CollectionCourse:
		return fmt.Sprintf("Course: %s\n%s", c.Title, c.Body)
	default:
		return strings.TrimSpace(c.Title + "\n" + c.Body)
	}
}

// Label returns the heading for a collection's context section.
func (col Collection) Label() string {
	switch col {
	case CollectionFaq:
		return "FREQUENTLY ASKED QUESTIONS"
	case CollectionCourse:
		return "COURSE CATALOG"
	default:
		return strings.ToUpper(string(col))
	}
}
