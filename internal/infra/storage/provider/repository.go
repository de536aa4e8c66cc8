package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	"github.com/m04kA/SMC-WashRequestService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashRequestService/pkg/psqlbuilder"
)

// Repository read-only репозиторий профилей исполнителей
// Профиль нужен фильтру видимости (город, радиус, набор услуг);
// CRUD профилей живет в сервисе исполнителей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория исполнителей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль исполнителя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"base_city",
		"radius_km",
		"services",
		"created_at",
		"updated_at",
	).
		From("providers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var provider domain.Provider
	var services pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&provider.BaseCity,
		&provider.RadiusKm,
		&services,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	provider.Services = make([]domain.ServiceType, 0, len(services))
	for _, s := range services {
		provider.Services = append(provider.Services, domain.ServiceType(s))
	}

	provider.CreatedAt = createdAt.Time
	provider.UpdatedAt = updatedAt.Time

	return &provider, nil
}
