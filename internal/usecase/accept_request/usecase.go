package accept_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	washrequestRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/washrequest"
)

// UseCase use case для принятия заявки исполнителем
//
// Два исполнителя могут одновременно пытаться забрать одну и ту же
// заявку. Принятие выполняется одним условным обновлением
// (status='pending' AND provider_id IS NULL), поэтому выигрывает ровно
// один; проигравший получает ErrAlreadyClaimed
type UseCase struct {
	requestRepo WashRequestRepository
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo WashRequestRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute выполняет use case принятия заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptRequest: provider=%d accepting request id=%d", req.ProviderID, req.WashRequestID)

	if req.WashRequestID <= 0 || req.ProviderID <= 0 {
		uc.logger.Warn("AcceptRequest: invalid input: request=%d, provider=%d", req.WashRequestID, req.ProviderID)
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	// Условная запись - единственная защита от гонки
	err := uc.requestRepo.Accept(ctx, req.WashRequestID, req.ProviderID)
	if err != nil {
		if !errors.Is(err, washrequestRepo.ErrStateConflict) {
			uc.logger.Error("AcceptRequest: repository error for request id=%d: %v", req.WashRequestID, err)
			return nil, fmt.Errorf("%w: failed to accept request: %v", ErrInternal, err)
		}

		// nil означает идемпотентный повтор: заявка уже принята этим же
		// исполнителем, продолжаем и возвращаем актуальное состояние
		if cErr := uc.classifyConflict(ctx, req); cErr != nil {
			return nil, cErr
		}
	}

	// Перечитываем заявку для ответа и уведомления
	request, err := uc.requestRepo.GetByID(ctx, req.WashRequestID)
	if err != nil {
		uc.logger.Error("AcceptRequest: failed to re-read request id=%d after accept: %v", req.WashRequestID, err)
		return nil, fmt.Errorf("%w: failed to read accepted request: %v", ErrInternal, err)
	}

	uc.logger.Info("AcceptRequest: request id=%d accepted by provider=%d", req.WashRequestID, req.ProviderID)

	// Уведомляем клиента (best-effort)
	uc.notifier.RequestAccepted(request)

	return fromDomain(request, req.ProviderID), nil
}

// classifyConflict уточняет причину отказа условной записи:
// заявка исчезла, уже в терминальном статусе или забрана другим исполнителем
func (uc *UseCase) classifyConflict(ctx context.Context, req *Request) error {
	request, err := uc.requestRepo.GetByID(ctx, req.WashRequestID)
	if err != nil {
		if errors.Is(err, washrequestRepo.ErrRequestNotFound) {
			uc.logger.Warn("AcceptRequest: request id=%d not found", req.WashRequestID)
			return ErrRequestNotFound
		}
		uc.logger.Error("AcceptRequest: failed to classify conflict for request id=%d: %v", req.WashRequestID, err)
		return fmt.Errorf("%w: failed to classify conflict: %v", ErrInternal, err)
	}

	// Повтор после сбоя ответа: заявка уже принята этим же исполнителем
	if request.Status == domain.StatusAccepted && request.IsBoundTo(req.ProviderID) {
		uc.logger.Info("AcceptRequest: request id=%d already accepted by provider=%d, no-op", req.WashRequestID, req.ProviderID)
		return nil
	}

	if request.IsTerminal() {
		uc.logger.Warn("AcceptRequest: request id=%d is %s, cannot accept", req.WashRequestID, request.Status)
		return ErrInvalidTransition
	}

	uc.logger.Warn("AcceptRequest: request id=%d already claimed, provider=%d lost the race",
		req.WashRequestID, req.ProviderID)
	return ErrAlreadyClaimed
}
