package complete_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WashRequestService/internal/api/handlers"
	"github.com/m04kA/SMC-WashRequestService/internal/api/middleware"
	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgCannotComplete   = "завершить можно только заявку в работе"
)

type Handler struct {
	service WashRequestService
	logger  Logger
}

func NewHandler(service WashRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/requests/{requestId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/complete - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /requests/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Complete(r.Context(), requestID, providerID)
	if err != nil {
		switch {
		case errors.Is(err, washrequests.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id}/complete - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, washrequests.ErrAccessDenied):
			h.logger.Warn("PATCH /requests/{id}/complete - Access denied: request_id=%d, provider=%d",
				requestID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, washrequests.ErrInvalidTransition):
			h.logger.Warn("PATCH /requests/{id}/complete - Cannot complete: request_id=%d", requestID)
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /requests/{id}/complete - Failed to complete request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/complete - Request completed successfully: request_id=%d, provider=%d",
		requestID, providerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
