package washrequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	"github.com/m04kA/SMC-WashRequestService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashRequestService/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"client_company_id",
	"provider_id",
	"address",
	"date_time",
	"notes",
	"invoice_url",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на мойку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку (без состава автомобилей)
// Состав добавляется через AddVehicles в той же транзакции
func (r *Repository) Create(ctx context.Context, request *domain.WashRequest) (*domain.WashRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("wash_requests").
		Columns(
			"client_company_id",
			"address",
			"date_time",
			"notes",
			"status",
		).
		Values(
			request.ClientCompanyID,
			request.Address,
			request.DateTime,
			request.Notes,
			request.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// AddVehicles добавляет состав автомобилей к заявке
// Вызывается один раз при создании; состав заявки неизменяем
func (r *Repository) AddVehicles(ctx context.Context, requestID int64, vehicles []domain.WashRequestVehicle) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("wash_request_vehicles").
		Columns("wash_request_id", "vehicle_id", "service_type", "position")

	for i, v := range vehicles {
		insertBuilder = insertBuilder.Values(requestID, v.VehicleID, v.ServiceType, i)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddVehicles - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddVehicles - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает заявку по ID вместе с составом автомобилей
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WashRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("wash_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	if err := r.loadVehicles(ctx, []*domain.WashRequest{request}); err != nil {
		return nil, err
	}

	return request, nil
}

// ListByClient получает заявки клиентской компании
// Опционально фильтрует по статусу; сортировка: ближайшие по времени первыми
func (r *Repository) ListByClient(ctx context.Context, clientCompanyID int64, status *domain.WashRequestStatus) ([]*domain.WashRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("wash_requests").
		Where(squirrel.Eq{"client_company_id": clientCompanyID}).
		OrderBy("date_time ASC, id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.listRequests(ctx, selectBuilder, "ListByClient")
}

// ListByProvider получает заявки, принятые исполнителем
func (r *Repository) ListByProvider(ctx context.Context, providerID int64) ([]*domain.WashRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("wash_requests").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("date_time ASC, id ASC")

	return r.listRequests(ctx, selectBuilder, "ListByProvider")
}

// ListPending получает все непринятые заявки, отсортированные по времени
// Источник данных для ленты исполнителей
func (r *Repository) ListPending(ctx context.Context) ([]*domain.WashRequest, error) {
	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("wash_requests").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		OrderBy("date_time ASC, id ASC")

	return r.listRequests(ctx, selectBuilder, "ListPending")
}

// Accept условно привязывает исполнителя к заявке
// Успешен только если заявка все еще pending и не привязана - это
// единственная защита от гонки двух исполнителей за одну заявку.
// Возвращает ErrStateConflict, если условие не выполнено
func (r *Repository) Accept(ctx context.Context, id int64, providerID int64) error {
	query, args, err := psqlbuilder.Update("wash_requests").
		Set("status", domain.StatusAccepted).
		Set("provider_id", providerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"status":      domain.StatusPending,
			"provider_id": nil,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Accept - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, query, args, "Accept")
}

// Release возвращает принятую заявку в pending (отмена исполнителем)
// Условие на providerID гарантирует, что чужую заявку освободить нельзя
func (r *Repository) Release(ctx context.Context, id int64, providerID int64) error {
	query, args, err := psqlbuilder.Update("wash_requests").
		Set("status", domain.StatusPending).
		Set("provider_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"status":      domain.StatusAccepted,
			"provider_id": providerID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, query, args, "Release")
}

// Start переводит заявку accepted -> in_progress для привязанного исполнителя
func (r *Repository) Start(ctx context.Context, id int64, providerID int64) error {
	return r.transition(ctx, id, providerID, domain.StatusAccepted, domain.StatusInProgress, "Start")
}

// Complete переводит заявку in_progress -> completed для привязанного исполнителя
func (r *Repository) Complete(ctx context.Context, id int64, providerID int64) error {
	return r.transition(ctx, id, providerID, domain.StatusInProgress, domain.StatusCompleted, "Complete")
}

func (r *Repository) transition(ctx context.Context, id, providerID int64, from, to domain.WashRequestStatus, op string) error {
	query, args, err := psqlbuilder.Update("wash_requests").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"status":      from,
			"provider_id": providerID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	return r.execConditional(ctx, query, args, op)
}

// CancelByClient переводит заявку клиента в cancelled
// Разрешено только из pending/accepted. Отмена снимает привязку
// исполнителя: у cancelled заявки исполнителя быть не может
func (r *Repository) CancelByClient(ctx context.Context, id int64, clientCompanyID int64) error {
	query, args, err := psqlbuilder.Update("wash_requests").
		Set("status", domain.StatusCancelled).
		Set("provider_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":                id,
			"client_company_id": clientCompanyID,
			"status":            domain.ExpirableStatuses,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelByClient - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, query, args, "CancelByClient")
}

// SetInvoiceURL прикрепляет ссылку на счет к завершенной заявке
// Разрешено только привязанному исполнителю и только в статусе completed
func (r *Repository) SetInvoiceURL(ctx context.Context, id int64, providerID int64, invoiceURL string) error {
	query, args, err := psqlbuilder.Update("wash_requests").
		Set("invoice_url", invoiceURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"status":      domain.StatusCompleted,
			"provider_id": providerID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetInvoiceURL - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, query, args, "SetInvoiceURL")
}

// Delete физически удаляет нетерминальную заявку клиента
// Состав автомобилей удаляется каскадно (FK ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64, clientCompanyID int64) error {
	query, args, err := psqlbuilder.Delete("wash_requests").
		Where(squirrel.Eq{
			"id":                id,
			"client_company_id": clientCompanyID,
		}).
		Where(squirrel.NotEq{"status": domain.TerminalStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, query, args, "Delete")
}

// CancelOverdue пакетно переводит просроченные pending/accepted заявки
// в cancelled. Идемпотентен: повторный вызов без изменений состояния
// не затрагивает ни одной строки
func (r *Repository) CancelOverdue(ctx context.Context, now time.Time, scope domain.SweepScope) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Просроченная accepted заявка тоже становится cancelled,
	// поэтому привязка исполнителя снимается вместе со сменой статуса
	updateBuilder := psqlbuilder.Update("wash_requests").
		Set("status", domain.StatusCancelled).
		Set("provider_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.ExpirableStatuses}).
		Where(squirrel.Lt{"date_time": now})

	if scope.ClientCompanyID != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"client_company_id": *scope.ClientCompanyID})
	}
	if scope.ProviderID != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"provider_id": *scope.ProviderID})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelOverdue - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelOverdue - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelOverdue - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// execConditional выполняет условное обновление и возвращает ErrStateConflict,
// если ни одна строка не затронута
func (r *Repository) execConditional(ctx context.Context, query string, args []interface{}, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStateConflict
	}

	return nil
}

// listRequests выполняет select и подгружает состав автомобилей
func (r *Repository) listRequests(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.WashRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	requests := make([]*domain.WashRequest, 0)
	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	if err := r.loadVehicles(ctx, requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRequest(row rowScanner) (*domain.WashRequest, error) {
	var request domain.WashRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.ClientCompanyID,
		&request.ProviderID,
		&request.Address,
		&request.DateTime,
		&request.Notes,
		&request.InvoiceURL,
		&request.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return &request, nil
}

// loadVehicles подгружает состав автомобилей для набора заявок одним запросом
func (r *Repository) loadVehicles(ctx context.Context, requests []*domain.WashRequest) error {
	if len(requests) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(requests))
	byID := make(map[int64]*domain.WashRequest, len(requests))
	for i, request := range requests {
		ids[i] = request.ID
		byID[request.ID] = request
		request.Vehicles = make([]domain.WashRequestVehicle, 0)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"wash_request_id",
		"vehicle_id",
		"service_type",
		"position",
	).
		From("wash_request_vehicles").
		Where(squirrel.Eq{"wash_request_id": ids}).
		OrderBy("wash_request_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadVehicles - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadVehicles - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var vehicle domain.WashRequestVehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.WashRequestID,
			&vehicle.VehicleID,
			&vehicle.ServiceType,
			&vehicle.Position,
		); err != nil {
			return fmt.Errorf("%w: loadVehicles - scan row: %v", ErrScanRow, err)
		}

		if request, ok := byID[vehicle.WashRequestID]; ok {
			request.Vehicles = append(request.Vehicles, vehicle)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadVehicles - rows error: %v", ErrScanRow, err)
	}

	return nil
}
