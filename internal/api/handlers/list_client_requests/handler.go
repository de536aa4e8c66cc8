package list_client_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WashRequestService/internal/api/handlers"
	"github.com/m04kA/SMC-WashRequestService/internal/api/middleware"
	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests"
	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус заявки"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/clients/{clientId}/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientIDStr := vars["clientId"]

	clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/requests - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{clientId}/requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// История заявок доступна только самой клиентской компании
	if callerID != clientID {
		h.logger.Warn("GET /clients/{clientId}/requests - Access denied: client=%d, caller=%d", clientID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.ListClientRequestsRequest{
		ClientCompanyID: clientID,
		Status:          statusPtr,
	}

	result, err := h.service.ListByClient(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, washrequests.ErrInvalidInput) {
			h.logger.Warn("GET /clients/{clientId}/requests - Invalid status: client=%d, status=%s", clientID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}

		h.logger.Error("GET /clients/{clientId}/requests - Failed to list requests: client=%d, error=%v",
			clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{clientId}/requests - Requests retrieved successfully: client=%d, count=%d",
		clientID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
