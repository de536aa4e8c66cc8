package decline

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-WashRequestService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashRequestService/pkg/psqlbuilder"
)

// Repository репозиторий журнала отказов исполнителей
// Журнал append-only: записи никогда не обновляются и не удаляются,
// отказ скрывает заявку от исполнителя навсегда
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отказов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись об отказе
// Идемпотентен: повторный отказ того же исполнителя по той же заявке
// не является ошибкой (ON CONFLICT DO NOTHING)
func (r *Repository) Create(ctx context.Context, providerID, washRequestID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_declines").
		Columns("provider_id", "wash_request_id").
		Values(providerID, washRequestID).
		Suffix("ON CONFLICT (provider_id, wash_request_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListRequestIDsByProvider возвращает ID всех заявок, от которых
// исполнитель когда-либо отказывался
func (r *Repository) ListRequestIDsByProvider(ctx context.Context, providerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("wash_request_id").
		From("provider_declines").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRequestIDsByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRequestIDsByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListRequestIDsByProvider - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRequestIDsByProvider - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ListDeclinedRequestIDs возвращает подмножество переданных заявок,
// по которым существует хотя бы один отказ (любого исполнителя)
// Используется для флага "recycled" в ленте
func (r *Repository) ListDeclinedRequestIDs(ctx context.Context, washRequestIDs []int64) ([]int64, error) {
	if len(washRequestIDs) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT wash_request_id").
		From("provider_declines").
		Where(squirrel.Eq{"wash_request_id": washRequestIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDeclinedRequestIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDeclinedRequestIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListDeclinedRequestIDs - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDeclinedRequestIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Exists проверяет наличие отказа исполнителя по конкретной заявке
func (r *Repository) Exists(ctx context.Context, providerID, washRequestID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("provider_declines").
		Where(squirrel.Eq{
			"provider_id":     providerID,
			"wash_request_id": washRequestID,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
