package decline_request

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
	msgNotDeclinable    = "отказаться можно только от непринятой заявки"
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

// Handle POST /api/v1/requests/{requestId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/decline - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/decline - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Decline(r.Context(), requestID, providerID)
	if err != nil {
		switch {
		case errors.Is(err, washrequests.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/decline - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, washrequests.ErrInvalidTransition):
			h.logger.Warn("POST /requests/{id}/decline - Not declinable: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotDeclinable)

		default:
			h.logger.Error("POST /requests/{id}/decline - Failed to decline request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/decline - Request declined successfully: request_id=%d, provider=%d",
		requestID, providerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
