package create_request

import (
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	createRequest "github.com/m04kA/SMC-WashRequestService/internal/usecase/create_request"
)

// VehicleAssignment автомобиль с услугой в HTTP моделях
type VehicleAssignment struct {
	VehicleID   int64  `json:"vehicleId"`
	ServiceType string `json:"serviceType"`
}

// CreateWashRequestRequest HTTP request model
type CreateWashRequestRequest struct {
	Address  string              `json:"address"`
	DateTime string              `json:"dateTime"` // RFC3339, например "2026-09-15T10:00:00Z"
	Notes    *string             `json:"notes,omitempty"`
	Vehicles []VehicleAssignment `json:"vehicles"`
}

// WashRequestResponse HTTP response model
type WashRequestResponse struct {
	ID              int64               `json:"id"`
	ClientCompanyID int64               `json:"clientCompanyId"`
	Address         string              `json:"address"`
	DateTime        string              `json:"dateTime"`
	Notes           *string             `json:"notes,omitempty"`
	Status          string              `json:"status"`
	Vehicles        []VehicleAssignment `json:"vehicles"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateWashRequestRequest) ToUseCaseRequest(clientCompanyID int64) (*createRequest.Request, error) {
	dateTime, err := time.Parse(time.RFC3339, r.DateTime)
	if err != nil {
		return nil, err
	}

	vehicles := make([]createRequest.VehicleAssignment, 0, len(r.Vehicles))
	for _, v := range r.Vehicles {
		vehicles = append(vehicles, createRequest.VehicleAssignment{
			VehicleID:   v.VehicleID,
			ServiceType: domain.ServiceType(v.ServiceType),
		})
	}

	return &createRequest.Request{
		ClientCompanyID: clientCompanyID,
		Address:         r.Address,
		DateTime:        dateTime,
		Notes:           r.Notes,
		Vehicles:        vehicles,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRequest.Response) *WashRequestResponse {
	vehicles := make([]VehicleAssignment, 0, len(resp.Vehicles))
	for _, v := range resp.Vehicles {
		vehicles = append(vehicles, VehicleAssignment{
			VehicleID:   v.VehicleID,
			ServiceType: string(v.ServiceType),
		})
	}

	return &WashRequestResponse{
		ID:              resp.ID,
		ClientCompanyID: resp.ClientCompanyID,
		Address:         resp.Address,
		DateTime:        resp.DateTime.Format(time.RFC3339),
		Notes:           resp.Notes,
		Status:          resp.Status,
		Vehicles:        vehicles,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
