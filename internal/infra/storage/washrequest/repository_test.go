package washrequest

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	"github.com/m04kA/SMC-WashRequestService/pkg/ptr"
)

// captureExecutor записывает выполняемые запросы вместо похода в базу
type captureExecutor struct {
	query string
	args  []interface{}
	rows  int64
}

func (e *captureExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	e.args = args
	return fakeResult{rows: e.rows}, nil
}

func (e *captureExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query = query
	e.args = args
	return nil, sql.ErrNoRows
}

func (e *captureExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	e.query = query
	e.args = args
	return nil
}

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// setClause возвращает часть запроса между SET и WHERE
func setClause(t *testing.T, query string) string {
	t.Helper()

	setIdx := strings.Index(query, "SET ")
	whereIdx := strings.Index(query, " WHERE ")
	require.Greater(t, setIdx, -1, "query has no SET clause: %s", query)
	require.Greater(t, whereIdx, setIdx, "query has no WHERE clause: %s", query)

	return query[setIdx:whereIdx]
}

func TestCancelByClient_UnbindsProvider(t *testing.T) {
	executor := &captureExecutor{rows: 1}
	repo := NewRepository(executor)

	err := repo.CancelByClient(context.Background(), 7, 10)

	require.NoError(t, err)
	// Отмена принятой заявки должна снимать привязку исполнителя:
	// у cancelled строки provider_id обязан стать NULL
	set := setClause(t, executor.query)
	assert.Contains(t, set, "provider_id")
	assert.Contains(t, executor.args, nil)
	assert.Contains(t, executor.args, domain.StatusCancelled)
}

func TestCancelByClient_Conflict(t *testing.T) {
	executor := &captureExecutor{rows: 0}
	repo := NewRepository(executor)

	err := repo.CancelByClient(context.Background(), 7, 10)

	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestCancelOverdue_UnbindsProvider(t *testing.T) {
	executor := &captureExecutor{rows: 2}
	repo := NewRepository(executor)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	swept, err := repo.CancelOverdue(context.Background(), now, domain.SweepScope{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), swept)
	// Просроченная accepted заявка становится cancelled без исполнителя
	set := setClause(t, executor.query)
	assert.Contains(t, set, "provider_id")
	assert.Contains(t, executor.args, nil)
	// Sweep ограничен незавершенными статусами и прошедшим временем
	assert.Contains(t, executor.query, "status IN")
	assert.Contains(t, executor.query, "date_time <")
	assert.Contains(t, executor.args, now)
}

func TestCancelOverdue_ScopeFilters(t *testing.T) {
	executor := &captureExecutor{rows: 0}
	repo := NewRepository(executor)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	scope := domain.SweepScope{
		ClientCompanyID: ptr.Ptr(int64(10)),
		ProviderID:      ptr.Ptr(int64(42)),
	}

	swept, err := repo.CancelOverdue(context.Background(), now, scope)

	require.NoError(t, err)
	assert.Zero(t, swept)
	assert.Contains(t, executor.query, "client_company_id")
	assert.Contains(t, executor.args, int64(10))
	assert.Contains(t, executor.args, int64(42))
}

func TestRelease_UnbindsProvider(t *testing.T) {
	executor := &captureExecutor{rows: 1}
	repo := NewRepository(executor)

	err := repo.Release(context.Background(), 7, 42)

	require.NoError(t, err)
	set := setClause(t, executor.query)
	assert.Contains(t, set, "provider_id")
	assert.Contains(t, executor.args, nil)
	assert.Contains(t, executor.args, domain.StatusPending)
}
