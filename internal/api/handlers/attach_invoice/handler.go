package attach_invoice

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
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInvoiceURL  = "некорректная ссылка на счет"
	msgNotFound           = "заявка не найдена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotCompleted       = "счет можно прикрепить только к завершенной заявке"
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

// Handle PATCH /api/v1/requests/{requestId}/invoice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/invoice - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /requests/{id}/invoice - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AttachInvoiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /requests/{id}/invoice - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.AttachInvoice(r.Context(), requestID, req.ToServiceRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, washrequests.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id}/invoice - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, washrequests.ErrAccessDenied):
			h.logger.Warn("PATCH /requests/{id}/invoice - Access denied: request_id=%d, provider=%d",
				requestID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, washrequests.ErrInvalidTransition):
			h.logger.Warn("PATCH /requests/{id}/invoice - Request not completed: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, washrequests.ErrInvalidInput):
			h.logger.Warn("PATCH /requests/{id}/invoice - Invalid invoice URL: request_id=%d", requestID)
			handlers.RespondBadRequest(w, msgInvalidInvoiceURL)

		default:
			h.logger.Error("PATCH /requests/{id}/invoice - Failed to attach invoice: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/invoice - Invoice attached successfully: request_id=%d, provider=%d",
		requestID, providerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
