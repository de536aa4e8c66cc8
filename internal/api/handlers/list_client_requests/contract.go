package list_client_requests

import (
	"context"

	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

type WashRequestService interface {
	ListByClient(ctx context.Context, req *models.ListClientRequestsRequest) (*models.WashRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
