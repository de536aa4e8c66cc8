package attach_invoice

import (
	"context"

	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

type WashRequestService interface {
	AttachInvoice(ctx context.Context, id int64, req *models.AttachInvoiceRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
