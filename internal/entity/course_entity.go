package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Track       string
	Description string
	Fee         string
	Duration    string
	Schedule    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Chunk converts the course into its retrieval view. Optional fields are
// skipped rather than rendered blank.
func (c *Course) Chunk() DocumentChunk {
	var body strings.Builder
	if c.Track != "" {
		body.WriteString(fmt.Sprintf("Track: %s\n", c.Track))
	}
	if c.Fee != "" {
		body.WriteString(fmt.Sprintf("Fee: %s\n", c.Fee))
	}
	if c.Duration != "" {
		body.WriteString(fmt.Sprintf("Duration: %s\n", c.Duration))
	}
	if c.Schedule != "" {
		body.WriteString(fmt.Sprintf("Schedule: %s\n", c.Schedule))
	}
	body.WriteString(c.Description)

	return DocumentChunk{
		OriginId:   c.Id,
		Collection: CollectionCourse,
		Title:      c.Name,
		Body:       strings.TrimSpace(body.String()),
	}
}
