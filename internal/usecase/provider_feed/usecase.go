package provider_feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	providerRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/provider"
)

// UseCase use case ленты доступных заявок для исполнителя
type UseCase struct {
	requestRepo  WashRequestRepository
	declineRepo  DeclineRepository
	providerRepo ProviderRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo WashRequestRepository,
	declineRepo DeclineRepository,
	providerRepo ProviderRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		declineRepo:  declineRepo,
		providerRepo: providerRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения ленты заявок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProviderFeed: building feed for provider=%d", req.ProviderID)

	if req.ProviderID <= 0 {
		uc.logger.Warn("ProviderFeed: invalid provider id=%d", req.ProviderID)
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("ProviderFeed: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("ProviderFeed: failed to load provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to load provider: %v", ErrInternal, err)
	}

	// Ленивый sweep просроченных заявок перед чтением ленты.
	// Best-effort: сбой sweep не блокирует выдачу
	if swept, err := uc.requestRepo.CancelOverdue(ctx, uc.timeProvider.Now(), domain.SweepScope{}); err != nil {
		uc.logger.Warn("ProviderFeed: overdue sweep failed: %v", err)
	} else if swept > 0 {
		uc.logger.Info("ProviderFeed: swept %d overdue requests", swept)
	}

	requests, err := uc.requestRepo.ListPending(ctx)
	if err != nil {
		uc.logger.Error("ProviderFeed: failed to list pending requests: %v", err)
		return nil, fmt.Errorf("%w: failed to list pending requests: %v", ErrInternal, err)
	}

	ownDeclines, err := uc.loadOwnDeclines(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	anyDeclines, err := uc.loadAnyDeclines(ctx, requests)
	if err != nil {
		return nil, err
	}

	items := buildFeed(provider, requests, ownDeclines, anyDeclines)

	uc.logger.Info("ProviderFeed: provider=%d sees %d of %d pending requests",
		req.ProviderID, len(items), len(requests))

	return &Response{
		Items: items,
		Total: int64(len(items)),
	}, nil
}

// loadOwnDeclines возвращает множество заявок, отклоненных самим исполнителем
func (uc *UseCase) loadOwnDeclines(ctx context.Context, providerID int64) (map[int64]struct{}, error) {
	ids, err := uc.declineRepo.ListRequestIDsByProvider(ctx, providerID)
	if err != nil {
		uc.logger.Error("ProviderFeed: failed to load declines for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to load provider declines: %v", ErrInternal, err)
	}

	declines := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		declines[id] = struct{}{}
	}
	return declines, nil
}

// loadAnyDeclines возвращает множество заявок, отклоненных хотя бы одним
// исполнителем. Используется для пометки recycled
func (uc *UseCase) loadAnyDeclines(ctx context.Context, requests []*domain.WashRequest) (map[int64]struct{}, error) {
	if len(requests) == 0 {
		return map[int64]struct{}{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}

	declined, err := uc.declineRepo.ListDeclinedRequestIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("ProviderFeed: failed to load declined request ids: %v", err)
		return nil, fmt.Errorf("%w: failed to load declined request ids: %v", ErrInternal, err)
	}

	declines := make(map[int64]struct{}, len(declined))
	for _, id := range declined {
		declines[id] = struct{}{}
	}
	return declines, nil
}
