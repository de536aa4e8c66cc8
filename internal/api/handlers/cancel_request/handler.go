package cancel_request

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
	msgCannotCancel     = "заявка не может быть отменена"
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

// Handle PATCH /api/v1/requests/{requestId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/cancel - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /requests/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.CancelByClient(r.Context(), requestID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, washrequests.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id}/cancel - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, washrequests.ErrAccessDenied):
			h.logger.Warn("PATCH /requests/{id}/cancel - Access denied: request_id=%d, client=%d",
				requestID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, washrequests.ErrInvalidTransition):
			h.logger.Warn("PATCH /requests/{id}/cancel - Cannot cancel: request_id=%d", requestID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /requests/{id}/cancel - Failed to cancel request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/cancel - Request cancelled successfully: request_id=%d, client=%d",
		requestID, clientID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
