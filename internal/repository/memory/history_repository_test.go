package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"course-advisor-be/internal/entity"
)

func turn(role, content string) entity.Turn {
	return entity.Turn{Role: role, Content: content, At: time.Now()}
}

func TestHistoryAppendAndRead(t *testing.T) {
	repo := NewHistoryRepository(20)

	repo.Append("s1", turn("user", "hello"))
	repo.Append("s1", turn("assistant", "hi there"))

	got := repo.History("s1")
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].Content != "hello" || got[1].Content != "hi there" {
		t.Errorf("turns out of order: %+v", got)
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	repo := NewHistoryRepository(20)

	for i := 1; i <= 25; i++ {
		repo.Append("s1", turn("user", fmt.Sprintf("msg-%d", i)))
	}

	got := repo.History("s1")
	if len(got) != 20 {
		t.Fatalf("expected window of 20, got %d", len(got))
	}
	if got[0].Content != "msg-6" {
		t.Errorf("expected oldest surviving turn msg-6, got %s", got[0].Content)
	}
	if got[19].Content != "msg-25" {
		t.Errorf("expected newest turn msg-25, got %s", got[19].Content)
	}
}

func TestHistorySessionsAreIsolated(t *testing.T) {
	repo := NewHistoryRepository(20)

	repo.Append("a", turn("user", "question about fees"))
	repo.Append("b", turn("user", "question about schedule"))

	if got := repo.History("a"); len(got) != 1 || got[0].Content != "question about fees" {
		t.Errorf("session a polluted: %+v", got)
	}
	if got := repo.History("b"); len(got) != 1 || got[0].Content != "question about schedule" {
		t.Errorf("session b polluted: %+v", got)
	}
}

func TestHistoryClear(t *testing.T) {
	repo := NewHistoryRepository(20)

	repo.Append("s1", turn("user", "hello"))
	repo.Clear("s1")

	if got := repo.History("s1"); len(got) != 0 {
		t.Errorf("expected empty history after clear, got %d turns", len(got))
	}
}

func TestHistoryConcurrentAppends(t *testing.T) {
	repo := NewHistoryRepository(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				repo.Append("s1", turn("user", fmt.Sprintf("g%d-%d", n, j)))
			}
		}(i)
	}
	wg.Wait()

	if got := repo.History("s1"); len(got) != 50 {
		t.Errorf("expected 50 turns, got %d", len(got))
	}
}
