package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"course-advisor-be/internal/dto"
	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/specification"
	"course-advisor-be/internal/repository/unitofwork"
	"course-advisor-be/pkg/embedding"
	"course-advisor-be/pkg/events"
	pktNats "course-advisor-be/pkg/nats"
	"course-advisor-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIngestService interface {
	Consume(ctx context.Context) error
}

// ingestService keeps the chunk embedding index in sync with the FAQ and
// course tables. Documents arrive as embed events published on seed/update.
type ingestService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	natsPub           *pktNats.Publisher
}

func NewIngestService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	natsPub *pktNats.Publisher,
) IIngestService {
	return &ingestService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		natsPub:           natsPub,
	}
}

func (is *ingestService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *ingestService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // invalid payloads would retry forever
		return
	}

	chunk, err := is.loadChunk(ctx, payload)
	if err != nil {
		log.Printf("[ERROR] Failed to load document %s/%s: %v", payload.Collection, payload.OriginId, err)
		msg.Nack()
		return
	}
	if chunk == nil {
		log.Printf("[WARN] Document %s/%s no longer exists, skipping", payload.Collection, payload.OriginId)
		msg.Ack()
		return
	}

	content := chunk.SearchText()
	pieces := utils.SplitText(content, 1500, 200)

	var newEmbeddings []*entity.ChunkEmbedding
	for i, piece := range pieces {
		res, err := is.embeddingProvider.Generate(ctx, piece, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of %s/%s: %v", i, payload.Collection, payload.OriginId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.ChunkEmbedding{
			Id:         uuid.New(),
			OriginId:   chunk.OriginId,
			Collection: chunk.Collection,
			Document:   piece,
			Values:     res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	uow := is.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByOriginId(ctx, chunk.OriginId); err != nil {
		log.Printf("[ERROR] Failed to delete stale embeddings: %v", err)
		msg.Nack()
		return
	}
	if err := uow.ChunkEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to store embeddings: %v", err)
		msg.Nack()
		return
	}
	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embeddings: %v", err)
		msg.Nack()
		return
	}

	if is.natsPub != nil {
		event := events.NewDocumentUpsertedEvent(string(chunk.Collection), chunk.OriginId.String())
		if err := is.natsPub.Publish(ctx, event); err != nil {
			log.Printf("[WARN] Failed to publish document upserted event: %v", err)
		}
	}

	log.Printf("[INFO] Indexed %d chunks for %s/%s", len(newEmbeddings), payload.Collection, payload.OriginId)
	msg.Ack()
}

func (is *ingestService) loadChunk(ctx context.Context, payload dto.PublishEmbedDocumentMessage) (*entity.DocumentChunk, error) {
	uow := is.uowFactory.NewUnitOfWork(ctx)

	switch entity.Collection(payload.Collection) {
	case entity.CollectionFaq:
		faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: payload.OriginId})
		if err != nil || faq == nil {
			return nil, err
		}
		chunk := faq.Chunk()
		return &chunk, nil
	case entity.CollectionCourse:
		course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: payload.OriginId})
		if err != nil || course == nil {
			return nil, err
		}
		chunk := course.Chunk()
		return &chunk, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", payload.Collection)
	}
}
