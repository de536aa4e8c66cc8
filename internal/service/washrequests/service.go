package washrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	washrequestRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/washrequest"
	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

// Service движок переходов жизненного цикла заявки
// Валидирует и применяет все переходы статусов, кроме создания (usecase
// create_request) и принятия (usecase accept_request)
type Service struct {
	requestRepo  WashRequestRepository
	declineRepo  DeclineRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo WashRequestRepository,
	declineRepo DeclineRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:  requestRepo,
		declineRepo:  declineRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает заявку по ID
// Доступ имеют владелец (клиентская компания) и привязанный исполнитель
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.WashRequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for caller=%d", id, callerID)

	request, err := s.getRequest(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	// Точечное чтение тоже не должно отдавать просроченную pending/accepted
	// заявку: закрываем её sweep-ом и перечитываем
	if request.IsOverdue(s.timeProvider.Now()) {
		s.sweepBestEffort(ctx, domain.SweepScope{ClientCompanyID: &request.ClientCompanyID}, "GetByID")
		if request, err = s.getRequest(ctx, id, "GetByID"); err != nil {
			return nil, err
		}
	}

	if request.ClientCompanyID != callerID && !request.IsBoundTo(callerID) {
		s.logger.Warn("GetByID: access denied for caller=%d to request id=%d", callerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainWashRequest(request), nil
}

// ListByClient получает заявки клиентской компании
// Перед чтением выполняет ленивый sweep просроченных заявок этого клиента:
// список никогда не должен содержать pending/accepted заявку с прошедшим
// временем. Ошибка sweep не блокирует чтение
func (s *Service) ListByClient(ctx context.Context, req *models.ListClientRequestsRequest) (*models.WashRequestListResponse, error) {
	s.logger.Info("ListByClient: fetching requests for client=%d, status=%v", req.ClientCompanyID, req.Status)

	var domainStatus *domain.WashRequestStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s for client=%d", *req.Status, req.ClientCompanyID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	s.sweepBestEffort(ctx, domain.SweepScope{ClientCompanyID: &req.ClientCompanyID}, "ListByClient")

	requests, err := s.requestRepo.ListByClient(ctx, req.ClientCompanyID, domainStatus)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientCompanyID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: successfully fetched %d requests for client=%d", len(requests), req.ClientCompanyID)
	return models.FromDomainWashRequestList(requests), nil
}

// ListByProvider получает заявки, принятые исполнителем
// Перед чтением выполняет ленивый sweep заявок этого исполнителя
func (s *Service) ListByProvider(ctx context.Context, providerID int64) (*models.WashRequestListResponse, error) {
	s.logger.Info("ListByProvider: fetching requests for provider=%d", providerID)

	s.sweepBestEffort(ctx, domain.SweepScope{ProviderID: &providerID}, "ListByProvider")

	requests, err := s.requestRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListByProvider: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByProvider: successfully fetched %d requests for provider=%d", len(requests), providerID)
	return models.FromDomainWashRequestList(requests), nil
}

// Start переводит заявку accepted -> in_progress
// Доступно только привязанному исполнителю
func (s *Service) Start(ctx context.Context, id int64, providerID int64) error {
	s.logger.Info("Start: starting request id=%d by provider=%d", id, providerID)

	request, err := s.getRequest(ctx, id, "Start")
	if err != nil {
		return err
	}

	if !request.IsBoundTo(providerID) {
		s.logger.Warn("Start: provider=%d is not bound to request id=%d", providerID, id)
		return ErrAccessDenied
	}

	if !request.CanBeStarted() {
		s.logger.Warn("Start: request id=%d cannot be started, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	if err := s.requestRepo.Start(ctx, id, providerID); err != nil {
		return s.mapConditionalError(err, id, "Start")
	}

	s.logger.Info("Start: request id=%d is now in_progress", id)
	return nil
}

// Complete переводит заявку in_progress -> completed
// Терминальный статус; после него становится доступно прикрепление счета
func (s *Service) Complete(ctx context.Context, id int64, providerID int64) error {
	s.logger.Info("Complete: completing request id=%d by provider=%d", id, providerID)

	request, err := s.getRequest(ctx, id, "Complete")
	if err != nil {
		return err
	}

	if !request.IsBoundTo(providerID) {
		s.logger.Warn("Complete: provider=%d is not bound to request id=%d", providerID, id)
		return ErrAccessDenied
	}

	if !request.CanBeCompleted() {
		s.logger.Warn("Complete: request id=%d cannot be completed, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	if err := s.requestRepo.Complete(ctx, id, providerID); err != nil {
		return s.mapConditionalError(err, id, "Complete")
	}

	s.logger.Info("Complete: request id=%d is now completed", id)
	return nil
}

// CancelByProvider возвращает принятую заявку в pending и записывает отказ
//
// Порядок записи важен: сначала отказ, потом освобождение заявки.
// Запись отказа идемпотентна, поэтому повтор всего перехода после
// частичного сбоя безопасен: заявка, уже вернувшаяся в pending при
// существующем отказе, считается успешно отмененной
func (s *Service) CancelByProvider(ctx context.Context, id int64, providerID int64) error {
	s.logger.Info("CancelByProvider: cancelling request id=%d by provider=%d", id, providerID)

	request, err := s.getRequest(ctx, id, "CancelByProvider")
	if err != nil {
		return err
	}

	if !request.CanBeCancelledByProvider() {
		// Повтор после частичного сбоя: заявка уже освобождена,
		// отказ уже записан - переход считается выполненным
		if request.Status == domain.StatusPending && request.ProviderID == nil {
			declined, exErr := s.declineRepo.Exists(ctx, providerID, id)
			if exErr == nil && declined {
				s.logger.Info("CancelByProvider: request id=%d already released by provider=%d, no-op", id, providerID)
				return nil
			}
		}
		s.logger.Warn("CancelByProvider: request id=%d cannot be cancelled, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	if !request.IsBoundTo(providerID) {
		s.logger.Warn("CancelByProvider: provider=%d is not bound to request id=%d", providerID, id)
		return ErrAccessDenied
	}

	if err := s.declineRepo.Create(ctx, providerID, id); err != nil {
		s.logger.Error("CancelByProvider: failed to record decline for request id=%d: %v", id, err)
		return fmt.Errorf("%w: CancelByProvider - decline ledger error: %v", ErrInternal, err)
	}

	if err := s.requestRepo.Release(ctx, id, providerID); err != nil {
		return s.mapConditionalError(err, id, "CancelByProvider")
	}

	s.logger.Info("CancelByProvider: request id=%d released back to pending, decline recorded for provider=%d",
		id, providerID)

	s.notifier.ProviderCancelled(request, providerID)
	return nil
}

// Decline записывает отказ исполнителя от непринятой заявки
// Статус заявки не меняется; для остальных исполнителей она остается видимой
func (s *Service) Decline(ctx context.Context, id int64, providerID int64) error {
	s.logger.Info("Decline: provider=%d declining request id=%d", providerID, id)

	request, err := s.getRequest(ctx, id, "Decline")
	if err != nil {
		return err
	}

	if request.Status != domain.StatusPending {
		s.logger.Warn("Decline: request id=%d is not pending, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	// Повторный отказ - no-op на уровне журнала
	if err := s.declineRepo.Create(ctx, providerID, id); err != nil {
		s.logger.Error("Decline: failed to record decline for request id=%d: %v", id, err)
		return fmt.Errorf("%w: Decline - decline ledger error: %v", ErrInternal, err)
	}

	s.logger.Info("Decline: decline recorded for provider=%d, request id=%d", providerID, id)
	return nil
}

// CancelByClient переводит заявку клиента в cancelled (терминальный статус)
// Разрешено владельцу из pending/accepted
func (s *Service) CancelByClient(ctx context.Context, id int64, clientCompanyID int64) error {
	s.logger.Info("CancelByClient: cancelling request id=%d by client=%d", id, clientCompanyID)

	request, err := s.getRequest(ctx, id, "CancelByClient")
	if err != nil {
		return err
	}

	if request.ClientCompanyID != clientCompanyID {
		s.logger.Warn("CancelByClient: client=%d does not own request id=%d", clientCompanyID, id)
		return ErrAccessDenied
	}

	if !request.CanBeCancelledByClient() {
		s.logger.Warn("CancelByClient: request id=%d cannot be cancelled, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	if err := s.requestRepo.CancelByClient(ctx, id, clientCompanyID); err != nil {
		return s.mapConditionalError(err, id, "CancelByClient")
	}

	s.logger.Info("CancelByClient: request id=%d cancelled by client=%d", id, clientCompanyID)
	return nil
}

// Delete физически удаляет нетерминальную заявку владельца
func (s *Service) Delete(ctx context.Context, id int64, clientCompanyID int64) error {
	s.logger.Info("Delete: deleting request id=%d by client=%d", id, clientCompanyID)

	request, err := s.getRequest(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if request.ClientCompanyID != clientCompanyID {
		s.logger.Warn("Delete: client=%d does not own request id=%d", clientCompanyID, id)
		return ErrAccessDenied
	}

	if request.IsTerminal() {
		s.logger.Warn("Delete: request id=%d is terminal, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	if err := s.requestRepo.Delete(ctx, id, clientCompanyID); err != nil {
		return s.mapConditionalError(err, id, "Delete")
	}

	s.logger.Info("Delete: request id=%d deleted", id)
	return nil
}

// AttachInvoice прикрепляет ссылку на счет к завершенной заявке
// Доступно только привязанному исполнителю и только в статусе completed
func (s *Service) AttachInvoice(ctx context.Context, id int64, req *models.AttachInvoiceRequest) error {
	s.logger.Info("AttachInvoice: attaching invoice to request id=%d by provider=%d", id, req.ProviderID)

	invoiceURL := strings.TrimSpace(req.InvoiceURL)
	if invoiceURL == "" || len(invoiceURL) > domain.MaxInvoiceURLLength {
		s.logger.Warn("AttachInvoice: invalid invoice URL for request id=%d", id)
		return fmt.Errorf("%w: invalid invoice URL", ErrInvalidInput)
	}

	request, err := s.getRequest(ctx, id, "AttachInvoice")
	if err != nil {
		return err
	}

	if !request.IsBoundTo(req.ProviderID) {
		s.logger.Warn("AttachInvoice: provider=%d is not bound to request id=%d", req.ProviderID, id)
		return ErrAccessDenied
	}

	if request.Status != domain.StatusCompleted {
		s.logger.Warn("AttachInvoice: request id=%d is not completed, status=%s", id, request.Status)
		return ErrInvalidTransition
	}

	if err := s.requestRepo.SetInvoiceURL(ctx, id, req.ProviderID, invoiceURL); err != nil {
		return s.mapConditionalError(err, id, "AttachInvoice")
	}

	s.logger.Info("AttachInvoice: invoice attached to request id=%d", id)
	return nil
}

// SweepOverdue переводит просроченные pending/accepted заявки в cancelled
// Идемпотентен; вызывается перед чтением списков
func (s *Service) SweepOverdue(ctx context.Context, scope domain.SweepScope) (int64, error) {
	cancelled, err := s.requestRepo.CancelOverdue(ctx, s.timeProvider.Now(), scope)
	if err != nil {
		return 0, fmt.Errorf("%w: SweepOverdue - repository error: %v", ErrInternal, err)
	}

	if cancelled > 0 {
		s.logger.Info("SweepOverdue: cancelled %d overdue requests", cancelled)
	}

	return cancelled, nil
}

// Вспомогательные методы

// sweepBestEffort выполняет sweep, не блокируя чтение при ошибке
func (s *Service) sweepBestEffort(ctx context.Context, scope domain.SweepScope, op string) {
	if _, err := s.SweepOverdue(ctx, scope); err != nil {
		s.logger.Error("%s: overdue sweep failed, proceeding with read: %v", op, err)
	}
}

func (s *Service) getRequest(ctx context.Context, id int64, op string) (*domain.WashRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, washrequestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return request, nil
}

// mapConditionalError классифицирует отказ условного обновления
// Проверки прав уже прошли на прочитанном состоянии, поэтому конфликт
// означает, что статус заявки успел измениться между чтением и записью
func (s *Service) mapConditionalError(err error, id int64, op string) error {
	if errors.Is(err, washrequestRepo.ErrStateConflict) {
		s.logger.Warn("%s: request id=%d changed concurrently, transition rejected", op, id)
		return ErrInvalidTransition
	}
	if errors.Is(err, washrequestRepo.ErrRequestNotFound) {
		s.logger.Warn("%s: request id=%d not found during update", op, id)
		return ErrRequestNotFound
	}
	s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
