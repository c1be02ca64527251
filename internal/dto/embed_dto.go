package dto

import "github.com/google/uuid"

// PublishEmbedDocumentMessage asks the ingest consumer to (re)index one
// document's chunk embeddings.
type PublishEmbedDocumentMessage struct {
	OriginId   uuid.UUID `json:"origin_id"`
	Collection string    `json:"collection"`
}
