package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// IdempotencyStore implements usecase.IdempotencyStore using Redis. The
// HTTP layer uses it to replay responses for repeated write requests
// carrying the same Idempotency-Key.
type IdempotencyStore struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.Metrics
}

// NewIdempotencyStore creates a new IdempotencyStore. m may be nil.
func NewIdempotencyStore(client *redis.Client, m *metrics.Metrics) *IdempotencyStore {
	return &IdempotencyStore{
		client:  client,
		prefix:  "idempotency:",
		metrics: m,
	}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	observe(s.metrics, "get", err)
	if err == nil {
		return true, existing, nil
	}
	if err != redis.Nil {
		return false, nil, err
	}

	if response != nil {
		err := s.client.Set(ctx, fullKey, response, ttl).Err()
		observe(s.metrics, "set", err)
		if err != nil {
			return false, nil, err
		}

		return false, nil, nil
	}

	// Claim the key while the request is in flight.
	set, err := s.client.SetNX(ctx, fullKey, "processing", ttl).Result()
	observe(s.metrics, "setnx", err)
	if err != nil {
		return false, nil, err
	}
	if !set {
		// Another request got there first.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		observe(s.metrics, "get", err)
		if err != nil && err != redis.Nil {
			return false, nil, err
		}

		return true, existing, nil
	}

	return false, nil, nil
}

// Update stores the final response under an already claimed key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	err := s.client.Set(ctx, s.prefix+key, response, ttl).Err()
	observe(s.metrics, "set", err)

	return err
}
