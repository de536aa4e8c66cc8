package accept_request

import (
	"context"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// WashRequestRepository интерфейс репозитория заявок
type WashRequestRepository interface {
	Accept(ctx context.Context, id int64, providerID int64) error
	GetByID(ctx context.Context, id int64) (*domain.WashRequest, error)
}

// Notifier интерфейс клиента уведомлений (best-effort)
type Notifier interface {
	RequestAccepted(request *domain.WashRequest)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
