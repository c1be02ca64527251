package retrieve

import (
	"context"

	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/repository/contract"
)

// Searcher exposes one collection's two search modes as document chunks.
type Searcher interface {
	Collection() entity.Collection
	SearchFullText(ctx context.Context, query string, limit int) ([]entity.DocumentChunk, error)
	SearchPattern(ctx context.Context, fragments []string, limit int) ([]entity.DocumentChunk, error)
}

type faqSearcher struct {
	repo contract.FaqRepository
}

func NewFaqSearcher(repo contract.FaqRepository) Searcher {
	return &faqSearcher{repo: repo}
}

func (s *faqSearcher) Collection() entity.Collection {
	return entity.CollectionFaq
}

func (s *faqSearcher) SearchFullText(ctx context.Context, query string, limit int) ([]entity.DocumentChunk, error) {
	faqs, err := s.repo.SearchFullText(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return faqChunks(faqs), nil
}

func (s *faqSearcher) SearchPattern(ctx context.Context, fragments []string, limit int) ([]entity.DocumentChunk, error) {
	faqs, err := s.repo.SearchPattern(ctx, fragments, limit)
	if err != nil {
		return nil, err
	}
	return faqChunks(faqs), nil
}

func faqChunks(faqs []*entity.Faq) []entity.DocumentChunk {
	chunks := make([]entity.DocumentChunk, len(faqs))
	for i, f := range faqs {
		chunks[i] = f.Chunk()
	}
	return chunks
}

type courseSearcher struct {
	repo contract.CourseRepository
}

func NewCourseSearcher(repo contract.CourseRepository) Searcher {
	return &courseSearcher{repo: repo}
}

func (s *courseSearcher) Collection() entity.Collection {
	return entity.CollectionCourse
}

func (s *courseSearcher) SearchFullText(ctx context.Context, query string, limit int) ([]entity.DocumentChunk, error) {
	courses, err := s.repo.SearchFullText(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return courseChunks(courses), nil
}

func (s *courseSearcher) SearchPattern(ctx context.Context, fragments []string, limit int) ([]entity.DocumentChunk, error) {
	courses, err := s.repo.SearchPattern(ctx, fragments, limit)
	if err != nil {
		return nil, err
	}
	return courseChunks(courses), nil
}

func courseChunks(courses []*entity.Course) []entity.DocumentChunk {
	chunks := make([]entity.DocumentChunk, len(courses))
	for i, c := range courses {
		chunks[i] = c.Chunk()
	}
	return chunks
}
