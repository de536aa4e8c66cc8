package accept_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WashRequestService/internal/api/handlers"
	"github.com/m04kA/SMC-WashRequestService/internal/api/middleware"
	acceptRequest "github.com/m04kA/SMC-WashRequestService/internal/usecase/accept_request"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgAlreadyClaimed   = "заявку уже принял другой исполнитель"
	msgNotAcceptable    = "заявка недоступна для принятия"
)

type Handler struct {
	useCase AcceptRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/accept - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptRequest.Request{
		WashRequestID: requestID,
		ProviderID:    providerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptRequest.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/accept - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptRequest.ErrAlreadyClaimed):
			h.logger.Warn("POST /requests/{id}/accept - Already claimed: request_id=%d, provider=%d",
				requestID, providerID)
			handlers.RespondConflict(w, msgAlreadyClaimed)

		case errors.Is(err, acceptRequest.ErrInvalidTransition):
			h.logger.Warn("POST /requests/{id}/accept - Not acceptable: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotAcceptable)

		case errors.Is(err, acceptRequest.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/accept - Invalid input: request_id=%d, provider=%d",
				requestID, providerID)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /requests/{id}/accept - Failed to accept request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/accept - Request accepted successfully: request_id=%d, provider=%d",
		requestID, providerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
