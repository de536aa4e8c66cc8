package start_request

import "context"

type WashRequestService interface {
	Start(ctx context.Context, id int64, providerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
