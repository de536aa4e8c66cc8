package create_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WashRequestService/internal/api/handlers"
	"github.com/m04kA/SMC-WashRequestService/internal/api/middleware"
	createRequest "github.com/m04kA/SMC-WashRequestService/internal/usecase/create_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты и времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNoVehicles         = "заявка должна содержать хотя бы один автомобиль"
	msgEmptyAddress       = "адрес не может быть пустым"
	msgDateNotTomorrow    = "дата мойки должна быть не раньше следующего дня"
	msgInvalidServiceType = "некорректный тип услуги"
	msgDuplicateVehicle   = "автомобиль указан в заявке более одного раза"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase CreateRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientCompanyID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateWashRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientCompanyID)
	if err != nil {
		h.logger.Warn("POST /requests - Failed to parse dateTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRequest.ErrNoVehicles):
			h.logger.Warn("POST /requests - No vehicles: client=%d", clientCompanyID)
			handlers.RespondBadRequest(w, msgNoVehicles)

		case errors.Is(err, createRequest.ErrEmptyAddress):
			h.logger.Warn("POST /requests - Empty address: client=%d", clientCompanyID)
			handlers.RespondBadRequest(w, msgEmptyAddress)

		case errors.Is(err, createRequest.ErrInvalidDate):
			h.logger.Warn("POST /requests - Date not at least next day: client=%d", clientCompanyID)
			handlers.RespondBadRequest(w, msgDateNotTomorrow)

		case errors.Is(err, createRequest.ErrInvalidServiceType):
			h.logger.Warn("POST /requests - Invalid service type: client=%d", clientCompanyID)
			handlers.RespondBadRequest(w, msgInvalidServiceType)

		case errors.Is(err, createRequest.ErrDuplicateVehicle):
			h.logger.Warn("POST /requests - Duplicate vehicle: client=%d", clientCompanyID)
			handlers.RespondBadRequest(w, msgDuplicateVehicle)

		case errors.Is(err, createRequest.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: client=%d, error=%v", clientCompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests - Failed to create request: client=%d, error=%v",
				clientCompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /requests - Request created successfully: request_id=%d, client=%d",
		result.ID, clientCompanyID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
