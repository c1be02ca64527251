package contract

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.Faq) error
	Update(ctx context.Context, faq *entity.Faq) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Faq, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Faq, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchFullText(ctx context.Context, query string, limit int) ([]*entity.Faq, error)
	SearchPattern(ctx context.Context, fragments []string, limit int) ([]*entity.Faq, error)
}
