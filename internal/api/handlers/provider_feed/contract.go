package provider_feed

import (
	"context"

	providerFeed "github.com/m04kA/SMC-WashRequestService/internal/usecase/provider_feed"
)

type ProviderFeedUseCase interface {
	Execute(ctx context.Context, req *providerFeed.Request) (*providerFeed.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
