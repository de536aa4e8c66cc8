package accept_request

import (
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// Request модель запроса на принятие заявки
type Request struct {
	WashRequestID int64
	ProviderID    int64
}

// Response модель ответа принятия заявки
type Response struct {
	ID              int64
	ClientCompanyID int64
	ProviderID      int64
	Address         string
	DateTime        time.Time
	Status          string
	UpdatedAt       time.Time
}

func fromDomain(r *domain.WashRequest, providerID int64) *Response {
	return &Response{
		ID:              r.ID,
		ClientCompanyID: r.ClientCompanyID,
		ProviderID:      providerID,
		Address:         r.Address,
		DateTime:        r.DateTime,
		Status:          string(r.Status),
		UpdatedAt:       r.UpdatedAt,
	}
}
