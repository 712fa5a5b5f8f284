package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	adaptershttp "github.com/finwatch/finwatch/internal/adapter/http"
	"github.com/finwatch/finwatch/internal/adapter/http/handler"
	"github.com/finwatch/finwatch/internal/adapter/repository/postgres"
	redisrepo "github.com/finwatch/finwatch/internal/adapter/repository/redis"
	infraredis "github.com/finwatch/finwatch/internal/infrastructure/redis"
	"github.com/finwatch/finwatch/internal/usecase"
	"github.com/finwatch/finwatch/tests/testutil"
)

// testEnv wires the full HTTP stack against real Postgres and Redis.
type testEnv struct {
	DB     *testutil.TestDB
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	pool := testDB.Pool
	obligationRepo := postgres.NewObligationRepository(pool, nil)
	budgetRepo := postgres.NewBudgetRepository(pool, nil)
	goalRepo := postgres.NewGoalRepository(pool, nil)
	categoryRepo := postgres.NewCategoryRepository(pool, nil)
	idGen := postgres.NewULIDGenerator()

	cache := redisrepo.NewCache(redisClient, nil)
	alertState := redisrepo.NewAlertStateStore(redisClient, nil)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient, nil)

	snapshots := usecase.NewCompositeSnapshotSource(obligationRepo, budgetRepo, goalRepo, categoryRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ObligationHandler: handler.NewObligationHandler(usecase.NewObligationUseCase(obligationRepo, idGen, cache, nil)),
		BudgetHandler:     handler.NewBudgetHandler(usecase.NewBudgetUseCase(budgetRepo, nil)),
		GoalHandler:       handler.NewGoalHandler(usecase.NewGoalUseCase(goalRepo, idGen, nil)),
		ReportHandler:     handler.NewReportHandler(usecase.NewReportUseCase(snapshots, cache, nil)),
		AlertHandler:      handler.NewAlertHandler(usecase.NewAlertUseCase(snapshots, goalRepo, alertState, nil)),
		ForecastHandler:   handler.NewForecastHandler(usecase.NewForecastUseCase(obligationRepo, categoryRepo, nil)),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
	})

	return &testEnv{
		DB:     testDB,
		Pool:   pool,
		Redis:  redisClient,
		Router: router,
	}
}

// do runs a request against the router and decodes the JSON response
// into out when it is non-nil.
func (env *testEnv) do(t *testing.T, method, path string, payload, out any) int {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.Router.ServeHTTP(w, r)

	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
		}
	}

	return w.Code
}
