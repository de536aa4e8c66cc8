package cancel_request

import "context"

type WashRequestService interface {
	CancelByClient(ctx context.Context, id int64, clientCompanyID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
