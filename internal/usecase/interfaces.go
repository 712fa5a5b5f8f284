package usecase

import (
	"context"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
)

// ObligationRepository defines data access for obligations.
type ObligationRepository interface {
	Create(ctx context.Context, rec *domain.ObligationRecord) error
	GetByID(ctx context.Context, id string) (*domain.ObligationRecord, error)
	List(ctx context.Context, limit, offset int) ([]*domain.ObligationRecord, error)
	ListAll(ctx context.Context) ([]*domain.ObligationRecord, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	MarkInstallmentPaid(ctx context.Context, id string, sequenceNumber int, paidAt time.Time) error
}

// BudgetRepository defines data access for budget configurations.
type BudgetRepository interface {
	Upsert(ctx context.Context, budget *domain.Budget) error
	GetByPeriod(ctx context.Context, period string) (*domain.Budget, error)
}

// GoalRepository defines data access for goals and their deposits.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	AddDeposit(ctx context.Context, deposit *domain.Deposit) error
	MarkCompleted(ctx context.Context, id string) error
}

// CategoryRepository defines data access for the category lookup.
type CategoryRepository interface {
	List(ctx context.Context) (domain.CategoryMap, error)
}

// SnapshotSource composes the independent reads (obligations, budget,
// categories, goals) into one snapshot consumed synchronously by the
// engine. A degraded fetch returns a partial snapshot together with an
// error matching domain.ErrPartialData.
type SnapshotSource interface {
	Fetch(ctx context.Context, period string) (*domain.Snapshot, error)
}

// AlertStateStore records which one-shot alerts have already been
// announced. MarkAnnounced is atomic check-and-set: it returns true only
// for the first caller of a given key. ClearAnnounced releases a claimed
// marker so the announcement can be retried after a failed follow-up
// write.
type AlertStateStore interface {
	MarkAnnounced(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ClearAnnounced(ctx context.Context, key string) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for mutating HTTP
// requests.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
