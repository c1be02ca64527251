package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"course-advisor-be/internal/config"
	"course-advisor-be/internal/pkg/logger"
	"course-advisor-be/internal/repository/implementation"
	"course-advisor-be/internal/repository/memory"
	"course-advisor-be/pkg/database"
	"course-advisor-be/pkg/rag/retrieve"

	"github.com/fatih/color"
)

// Runs the retrieval stage standalone against the live database, so context
// assembly can be inspected without calling a model provider.
//
//	go run ./cmd/diagnose_retrieval "how much is the web course"
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: diagnose_retrieval <query>")
	}
	query := strings.Join(os.Args[1:], " ")

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	searchers := []retrieve.Searcher{
		retrieve.NewFaqSearcher(implementation.NewFaqRepository(db)),
		retrieve.NewCourseSearcher(implementation.NewCourseRepository(db)),
	}
	retriever := retrieve.NewRetriever(searchers, memory.NewRetrievalCache(time.Minute), sysLogger, retrieve.Config{
		MaxContextChars:          cfg.Retrieval.MaxContextChars,
		PrimaryHitsPerCollection: cfg.Retrieval.PrimaryHitsPerCollection,
		FallbackTriggerThreshold: cfg.Retrieval.FallbackTriggerThreshold,
	})

	start := time.Now()
	result, err := retriever.Retrieve(context.Background(), query)
	if err != nil {
		color.Red("Retrieval failed: %v", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	color.Cyan("Query:     %s", query)
	color.Cyan("Elapsed:   %s", elapsed)
	color.Cyan("Hits:      %d", len(result.Hits))
	color.Cyan("TopScore:  %.3f", result.TopScore)
	if result.Truncated {
		color.Yellow("Truncated: context hit the %d char cap", cfg.Retrieval.MaxContextChars)
	}

	color.White("\nScored hits:")
	for i, hit := range result.Hits {
		line := color.GreenString
		if hit.Score <= cfg.Retrieval.StrongMatchThreshold {
			line = color.YellowString
		}
		log.Println(line("  %2d. [%.3f] %-7s %s", i+1, hit.Score, hit.Chunk.Collection, hit.Chunk.Title))
	}

	color.White("\nAssembled context (%d chars):", len(result.Context))
	log.Println(result.Context)
}
