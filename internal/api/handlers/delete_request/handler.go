package delete_request

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
	msgCannotDelete     = "завершенную или отмененную заявку удалить нельзя"
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

// Handle DELETE /api/v1/requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /requests/{id} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /requests/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), requestID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, washrequests.ErrRequestNotFound):
			h.logger.Warn("DELETE /requests/{id} - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, washrequests.ErrAccessDenied):
			h.logger.Warn("DELETE /requests/{id} - Access denied: request_id=%d, client=%d",
				requestID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, washrequests.ErrInvalidTransition):
			h.logger.Warn("DELETE /requests/{id} - Cannot delete terminal request: request_id=%d", requestID)
			handlers.RespondConflict(w, msgCannotDelete)

		default:
			h.logger.Error("DELETE /requests/{id} - Failed to delete request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /requests/{id} - Request deleted successfully: request_id=%d, client=%d",
		requestID, clientID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
