package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceTTL = 30 * 24 * time.Hour

// PresenceTracker keeps a last-seen marker per identity in Redis.
// Key format: presence:<user_id> → RFC3339 timestamp, expiring after
// presenceTTL. Purely informational; authentication never reads it.
type PresenceTracker struct {
	client *redis.Client
}

// NewPresenceTracker creates a PresenceTracker wrapping the given client.
func NewPresenceTracker(client *redis.Client) *PresenceTracker {
	return &PresenceTracker{client: client}
}

// Touch records that the identity was seen at the given time.
func (p *PresenceTracker) Touch(ctx context.Context, userID string, at time.Time) error {
	return p.client.Set(ctx, p.key(userID), at.UTC().Format(time.RFC3339), presenceTTL).Err()
}

// LastSeen returns the most recent marker for the identity, if any.
func (p *PresenceTracker) LastSeen(ctx context.Context, userID string) (time.Time, bool, error) {
	val, err := p.client.Get(ctx, p.key(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("presence get: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("presence parse: %w", err)
	}
	return ts, true, nil
}

func (p *PresenceTracker) key(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}
