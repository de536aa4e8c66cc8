package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid wash request status")
)

// Request модели

// ListClientRequestsRequest запрос на получение заявок клиентской компании
type ListClientRequestsRequest struct {
	ClientCompanyID int64   `json:"clientCompanyId"`
	Status          *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// AttachInvoiceRequest запрос на прикрепление счета к завершенной заявке
type AttachInvoiceRequest struct {
	ProviderID int64  `json:"providerId"`
	InvoiceURL string `json:"invoiceUrl"`
}

// Response модели

// VehicleResponse автомобиль в составе заявки
type VehicleResponse struct {
	VehicleID   int64  `json:"vehicleId"`
	ServiceType string `json:"serviceType"`
}

// WashRequestResponse ответ с данными заявки
type WashRequestResponse struct {
	ID              int64             `json:"id"`
	ClientCompanyID int64             `json:"clientCompanyId"`
	ProviderID      *int64            `json:"providerId,omitempty"`
	Address         string            `json:"address"`
	DateTime        time.Time         `json:"dateTime"`
	Notes           *string           `json:"notes,omitempty"`
	InvoiceURL      *string           `json:"invoiceUrl,omitempty"`
	Status          string            `json:"status"`
	Vehicles        []VehicleResponse `json:"vehicles"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// WashRequestListResponse ответ со списком заявок
type WashRequestListResponse struct {
	Requests []WashRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainWashRequest конвертирует domain модель в DTO
func FromDomainWashRequest(r *domain.WashRequest) *WashRequestResponse {
	if r == nil {
		return nil
	}

	vehicles := make([]VehicleResponse, 0, len(r.Vehicles))
	for _, v := range r.Vehicles {
		vehicles = append(vehicles, VehicleResponse{
			VehicleID:   v.VehicleID,
			ServiceType: string(v.ServiceType),
		})
	}

	return &WashRequestResponse{
		ID:              r.ID,
		ClientCompanyID: r.ClientCompanyID,
		ProviderID:      r.ProviderID,
		Address:         r.Address,
		DateTime:        r.DateTime,
		Notes:           r.Notes,
		InvoiceURL:      r.InvoiceURL,
		Status:          string(r.Status),
		Vehicles:        vehicles,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainWashRequestList конвертирует список domain моделей в DTO
func FromDomainWashRequestList(requests []*domain.WashRequest) *WashRequestListResponse {
	resp := &WashRequestListResponse{
		Requests: make([]WashRequestResponse, 0, len(requests)),
	}

	for _, request := range requests {
		if r := FromDomainWashRequest(request); r != nil {
			resp.Requests = append(resp.Requests, *r)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.WashRequestStatus с валидацией
func ToDomainStatus(status string) (domain.WashRequestStatus, error) {
	s := domain.WashRequestStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
