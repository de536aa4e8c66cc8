package washrequests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// WashRequestRepository интерфейс репозитория заявок
type WashRequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WashRequest, error)
	ListByClient(ctx context.Context, clientCompanyID int64, status *domain.WashRequestStatus) ([]*domain.WashRequest, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*domain.WashRequest, error)
	Start(ctx context.Context, id int64, providerID int64) error
	Complete(ctx context.Context, id int64, providerID int64) error
	Release(ctx context.Context, id int64, providerID int64) error
	CancelByClient(ctx context.Context, id int64, clientCompanyID int64) error
	SetInvoiceURL(ctx context.Context, id int64, providerID int64, invoiceURL string) error
	Delete(ctx context.Context, id int64, clientCompanyID int64) error
	CancelOverdue(ctx context.Context, now time.Time, scope domain.SweepScope) (int64, error)
}

// DeclineRepository интерфейс журнала отказов
type DeclineRepository interface {
	Create(ctx context.Context, providerID, washRequestID int64) error
	Exists(ctx context.Context, providerID, washRequestID int64) (bool, error)
}

// Notifier интерфейс клиента уведомлений (best-effort, не блокирует переходы)
type Notifier interface {
	ProviderCancelled(request *domain.WashRequest, providerID int64)
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
