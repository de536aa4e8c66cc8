package accept_request

import (
	"time"

	acceptRequest "github.com/m04kA/SMC-WashRequestService/internal/usecase/accept_request"
)

// AcceptResponse HTTP response model
type AcceptResponse struct {
	ID              int64  `json:"id"`
	ClientCompanyID int64  `json:"clientCompanyId"`
	ProviderID      int64  `json:"providerId"`
	Address         string `json:"address"`
	DateTime        string `json:"dateTime"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptRequest.Response) *AcceptResponse {
	return &AcceptResponse{
		ID:              resp.ID,
		ClientCompanyID: resp.ClientCompanyID,
		ProviderID:      resp.ProviderID,
		Address:         resp.Address,
		DateTime:        resp.DateTime.Format(time.RFC3339),
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
