package get_request

import (
	"context"

	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

type WashRequestService interface {
	GetByID(ctx context.Context, id int64, callerID int64) (*models.WashRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
