package provider_feed

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WashRequestService/internal/api/handlers"
	"github.com/m04kA/SMC-WashRequestService/internal/api/middleware"
	providerFeed "github.com/m04kA/SMC-WashRequestService/internal/usecase/provider_feed"
)

const (
	msgInvalidProviderID = "некорректный ID исполнителя"
	msgProviderNotFound  = "исполнитель не найден"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	useCase ProviderFeedUseCase
	logger  Logger
}

func NewHandler(useCase ProviderFeedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/feed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerIDStr := vars["providerId"]

	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/feed - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{providerId}/feed - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Лента персональная: у каждого исполнителя свой журнал отказов
	if callerID != providerID {
		h.logger.Warn("GET /providers/{providerId}/feed - Access denied: provider=%d, caller=%d",
			providerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &providerFeed.Request{ProviderID: providerID})
	if err != nil {
		switch {
		case errors.Is(err, providerFeed.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{providerId}/feed - Provider not found: provider=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, providerFeed.ErrInvalidInput):
			h.logger.Warn("GET /providers/{providerId}/feed - Invalid input: provider=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidProviderID)

		default:
			h.logger.Error("GET /providers/{providerId}/feed - Failed to build feed: provider=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/feed - Feed built successfully: provider=%d, count=%d",
		providerID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
