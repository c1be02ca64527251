package usage

import (
	"context"
	"fmt"
	"time"

	"course-advisor-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Tracker enforces a per-session daily request cap backed by Redis counters.
// Redis being down must never take the chat offline, so every failure here
// fails open.
type Tracker struct {
	rdb   *redis.Client
	limit int
	log   logger.ILogger
}

func NewTracker(rdb *redis.Client, dailyLimit int, log logger.ILogger) *Tracker {
	return &Tracker{
		rdb:   rdb,
		limit: dailyLimit,
		log:   log,
	}
}

// Allow counts this request against the session's daily quota and reports
// whether it is still within the cap.
func (t *Tracker) Allow(ctx context.Context, sessionId string) bool {
	if t.rdb == nil || t.limit <= 0 {
		return true
	}

	key := fmt.Sprintf("usage:chat:%s:%s", time.Now().UTC().Format("2006-01-02"), sessionId)
	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		t.log.Warn("usage", "redis unavailable, failing open", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return true
	}
	if count == 1 {
		// First hit of the day sets the expiry so stale counters clean up.
		t.rdb.Expire(ctx, key, 24*time.Hour)
	}

	return count <= int64(t.limit)
}
