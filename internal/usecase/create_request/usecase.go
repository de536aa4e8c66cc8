package create_request

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// UseCase use case для создания заявки на мойку
type UseCase struct {
	requestRepo  WashRequestRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo WashRequestRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заявки
// Заявка и её состав создаются в одной транзакции: заявка без
// автомобилей существовать не должна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRequest: client=%d, dateTime=%s, vehicles=%d",
		req.ClientCompanyID, req.DateTime.Format(domain.DateFormat), len(req.Vehicles))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	request := &domain.WashRequest{
		ClientCompanyID: req.ClientCompanyID,
		Address:         strings.TrimSpace(req.Address),
		DateTime:        req.DateTime,
		Notes:           req.Notes,
		Status:          domain.StatusPending,
	}

	// 2. Создаем заявку и состав в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.requestRepo.Create(txCtx, request)
		if err != nil {
			uc.logger.Error("CreateRequest: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}
		request = created

		vehicles := make([]domain.WashRequestVehicle, len(req.Vehicles))
		for i, v := range req.Vehicles {
			vehicles[i] = domain.WashRequestVehicle{
				WashRequestID: created.ID,
				VehicleID:     v.VehicleID,
				ServiceType:   v.ServiceType,
				Position:      i,
			}
		}

		if err := uc.requestRepo.AddVehicles(txCtx, created.ID, vehicles); err != nil {
			uc.logger.Error("CreateRequest: failed to add vehicles: %v", err)
			return fmt.Errorf("%w: failed to add vehicles: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateRequest: successfully created request id=%d", request.ID)

	// 3. Уведомляем подходящих исполнителей (best-effort)
	uc.notifier.RequestCreated(request)

	return &Response{
		ID:              request.ID,
		ClientCompanyID: request.ClientCompanyID,
		Address:         request.Address,
		DateTime:        request.DateTime,
		Notes:           request.Notes,
		Status:          string(request.Status),
		Vehicles:        req.Vehicles,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}, nil
}
