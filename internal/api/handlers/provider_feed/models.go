package provider_feed

import (
	"time"

	providerFeed "github.com/m04kA/SMC-WashRequestService/internal/usecase/provider_feed"
)

// FeedVehicleResponse автомобиль в составе заявки ленты
type FeedVehicleResponse struct {
	VehicleID   int64  `json:"vehicleId"`
	ServiceType string `json:"serviceType"`
}

// FeedItemResponse заявка в ленте исполнителя
type FeedItemResponse struct {
	ID              int64                 `json:"id"`
	ClientCompanyID int64                 `json:"clientCompanyId"`
	Address         string                `json:"address"`
	DateTime        string                `json:"dateTime"`
	Notes           *string               `json:"notes,omitempty"`
	Vehicles        []FeedVehicleResponse `json:"vehicles"`
	Recycled        bool                  `json:"recycled"`
	CreatedAt       string                `json:"createdAt"`
}

// FeedResponse HTTP response model
type FeedResponse struct {
	Requests []FeedItemResponse `json:"requests"`
	Total    int64              `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *providerFeed.Response) *FeedResponse {
	items := make([]FeedItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		vehicles := make([]FeedVehicleResponse, 0, len(item.Vehicles))
		for _, v := range item.Vehicles {
			vehicles = append(vehicles, FeedVehicleResponse{
				VehicleID:   v.VehicleID,
				ServiceType: v.ServiceType,
			})
		}

		items = append(items, FeedItemResponse{
			ID:              item.ID,
			ClientCompanyID: item.ClientCompanyID,
			Address:         item.Address,
			DateTime:        item.DateTime.Format(time.RFC3339),
			Notes:           item.Notes,
			Vehicles:        vehicles,
			Recycled:        item.Recycled,
			CreatedAt:       item.CreatedAt.Format(time.RFC3339),
		})
	}

	return &FeedResponse{
		Requests: items,
		Total:    resp.Total,
	}
}
