package create_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// WashRequestRepository интерфейс репозитория заявок
type WashRequestRepository interface {
	Create(ctx context.Context, request *domain.WashRequest) (*domain.WashRequest, error)
	AddVehicles(ctx context.Context, requestID int64, vehicles []domain.WashRequestVehicle) error
	GetByID(ctx context.Context, id int64) (*domain.WashRequest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента уведомлений (best-effort)
type Notifier interface {
	RequestCreated(request *domain.WashRequest)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
