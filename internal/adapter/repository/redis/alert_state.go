package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// AlertStateStore implements usecase.AlertStateStore using Redis. The
// atomic SETNX makes one-shot announcements safe across concurrent
// evaluations and multiple instances.
type AlertStateStore struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.Metrics
}

// NewAlertStateStore creates a new AlertStateStore. m may be nil.
func NewAlertStateStore(client *redis.Client, m *metrics.Metrics) *AlertStateStore {
	return &AlertStateStore{
		client:  client,
		prefix:  "alert:",
		metrics: m,
	}
}

// MarkAnnounced claims an announcement marker. Returns true only for the
// first caller. A zero TTL means the marker never expires.
func (s *AlertStateStore) MarkAnnounced(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	first, err := s.client.SetNX(ctx, s.prefix+key, "announced", ttl).Result()
	observe(s.metrics, "setnx", err)

	return first, err
}

// ClearAnnounced releases a claimed marker. Used to roll back a claim
// whose follow-up write failed; deleting a key that does not exist is
// not an error.
func (s *AlertStateStore) ClearAnnounced(ctx context.Context, key string) error {
	err := s.client.Del(ctx, s.prefix+key).Err()
	observe(s.metrics, "del", err)

	return err
}
