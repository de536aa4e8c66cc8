package list_provider_requests

import (
	"context"

	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

type WashRequestService interface {
	ListByProvider(ctx context.Context, providerID int64) (*models.WashRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
