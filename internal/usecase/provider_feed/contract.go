package provider_feed

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// WashRequestRepository интерфейс репозитория заявок
type WashRequestRepository interface {
	ListPending(ctx context.Context) ([]*domain.WashRequest, error)
	CancelOverdue(ctx context.Context, now time.Time, scope domain.SweepScope) (int64, error)
}

// DeclineRepository интерфейс журнала отказов
type DeclineRepository interface {
	ListRequestIDsByProvider(ctx context.Context, providerID int64) ([]int64, error)
	ListDeclinedRequestIDs(ctx context.Context, washRequestIDs []int64) ([]int64, error)
}

// ProviderRepository интерфейс репозитория профилей исполнителей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
