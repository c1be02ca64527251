package memory

import (
	"sync"
	"time"

	"course-advisor-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// HistoryRepository keeps a bounded per-session conversation window in memory.
// Sessions idle past the cache TTL are purged, so the session map cannot grow
// without bound.
type HistoryRepository struct {
	cache    *cache.Cache
	maxTurns int
	mu       sync.Mutex
}

func NewHistoryRepository(maxTurns int) *HistoryRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &HistoryRepository{
		cache:    c,
		maxTurns: maxTurns,
	}
}

// Append adds a turn to the session window, evicting the oldest turn once the
// window is full.
func (r *HistoryRepository) Append(sessionID string, turn entity.Turn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var turns []entity.Turn
	if x, found := r.cache.Get(sessionID); found {
		turns = x.([]entity.Turn)
	}

	turns = append(turns, turn)
	if r.maxTurns > 0 && len(turns) > r.maxTurns {
		turns = turns[len(turns)-r.maxTurns:]
	}

	r.cache.Set(sessionID, turns, cache.DefaultExpiration)
}

// History returns the session's turns oldest first. The slice is a copy.
func (r *HistoryRepository) History(sessionID string) []entity.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(sessionID)
	if !found {
		return nil
	}
	turns := x.([]entity.Turn)
	out := make([]entity.Turn, len(turns))
	copy(out, turns)
	return out
}

func (r *HistoryRepository) Clear(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
}
