package main

import (
	"context"
	"log"
	"time"

	"course-advisor-be/internal/bootstrap"
	"course-advisor-be/internal/config"
	"course-advisor-be/internal/entity"
	"course-advisor-be/internal/model"
	"course-advisor-be/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	container := bootstrap.NewContainer(db, cfg)

	// Run the ingest consumer locally so seeded documents get indexed in the
	// same process.
	ctx := context.Background()
	if err := container.IngestService.Consume(ctx); err != nil {
		log.Fatalf("Error: Failed to start ingest consumer: %v", err)
	}

	log.Println("Seeding FAQ catalog...")
	faqIds := seedFaqs(db)

	log.Println("Seeding Course catalog...")
	courseIds := seedCourses(db)

	log.Println("Publishing embed events...")
	for _, id := range faqIds {
		if err := container.PublisherService.PublishEmbedDocument(ctx, entity.CollectionFaq, id); err != nil {
			log.Printf("Error publishing embed event for faq %s: %v", id, err)
		}
	}
	for _, id := range courseIds {
		if err := container.PublisherService.PublishEmbedDocument(ctx, entity.CollectionCourse, id); err != nil {
			log.Printf("Error publishing embed event for course %s: %v", id, err)
		}
	}

	waitForIndexing(db, append(faqIds, courseIds...))
	log.Println("✅ Seeding completed!")
}

func seedFaqs(db *gorm.DB) []uuid.UUID {
	faqs := []model.Faq{
		{Question: "How do I enroll in a course?", Answer: "Register through the website or visit our front desk. Enrollment closes one week before each batch starts.", Category: "enrollment"},
		{Question: "What payment methods do you accept?", Answer: "We accept bank transfer, credit card, and installment plans over three months.", Category: "payment"},
		{Question: "Can I get a refund after enrolling?", Answer: "Full refunds are available up to seven days before the batch starts. After that, fees can be transferred to a later batch.", Category: "payment"},
		{Question: "Do you offer a certificate on completion?", Answer: "Yes, every course grants a certificate of completion once all assignments are submitted.", Category: "general"},
		{Question: "Are classes available on weekends?", Answer: "Most tracks run weekday evenings, and the data and web tracks also offer weekend batches.", Category: "schedule"},
	}

	var ids []uuid.UUID
	for _, f := range faqs {
		var existing model.Faq
		if err := db.Where("question = ?", f.Question).First(&existing).Error; err == nil {
			log.Printf("FAQ '%s' already exists, skipping...", f.Question)
			ids = append(ids, existing.Id)
			continue
		}

		if err := db.Create(&f).Error; err != nil {
			log.Printf("Error creating FAQ '%s': %v", f.Question, err)
			continue
		}
		log.Printf("Created FAQ: %s", f.Question)
		ids = append(ids, f.Id)
	}
	return ids
}

func seedCourses(db *gorm.DB) []uuid.UUID {
	courses := []model.Course{
		{Name: "Fullstack Web Development", Track: "web", Description: "Build and deploy complete web applications with modern frontend and backend tooling.", Fee: "Rp 7.500.000", Duration: "12 weeks", Schedule: "Mon/Wed/Fri 19:00-21:00"},
		{Name: "Data Analytics Fundamentals", Track: "data", Description: "Learn SQL, spreadsheets, and dashboarding to turn raw data into business decisions.", Fee: "Rp 5.000.000", Duration: "8 weeks", Schedule: "Sat 09:00-13:00"},
		{Name: "Machine Learning Engineering", Track: "data", Description: "Train, evaluate, and ship machine learning models to production.", Fee: "Rp 9.000.000", Duration: "16 weeks", Schedule: "Tue/Thu 19:00-21:30"},
		{Name: "UI/UX Design Bootcamp", Track: "design", Description: "Research, wireframe, and prototype product interfaces from scratch.", Fee: "Rp 6.000.000", Duration: "10 weeks", Schedule: "Sun 10:00-14:00"},
	}

	var ids []uuid.UUID
	for _, c := range courses {
		var existing model.Course
		if err := db.Where("name = ?", c.Name).First(&existing).Error; err == nil {
			log.Printf("Course '%s' already exists, skipping...", c.Name)
			ids = append(ids, existing.Id)
			continue
		}

		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating course '%s': %v", c.Name, err)
			continue
		}
		log.Printf("Created course: %s", c.Name)
		ids = append(ids, c.Id)
	}
	return ids
}

// waitForIndexing polls until every seeded document has embeddings, so the
// process does not exit before the background consumer finishes.
func waitForIndexing(db *gorm.DB, ids []uuid.UUID) {
	deadline := time.Now().Add(2 * time.Minute)
	for time.Now().Before(deadline) {
		var indexed int64
		if err := db.Model(&model.ChunkEmbedding{}).
			Where("origin_id IN ?", ids).
			Distinct("origin_id").
			Count(&indexed).Error; err != nil {
			log.Printf("Warn: Failed to check indexing progress: %v", err)
		}
		if indexed >= int64(len(ids)) {
			log.Printf("Indexed %d/%d documents", indexed, len(ids))
			return
		}
		log.Printf("Indexing in progress: %d/%d documents...", indexed, len(ids))
		time.Sleep(3 * time.Second)
	}
	log.Println("Warn: Indexing did not finish before timeout, remaining documents will index on next seed run")
}
