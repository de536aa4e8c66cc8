package provider_feed

import (
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// Request модель запроса ленты доступных заявок
type Request struct {
	ProviderID int64
}

// FeedVehicle автомобиль в составе заявки ленты
type FeedVehicle struct {
	VehicleID   int64
	ServiceType string
}

// FeedItem заявка в ленте исполнителя
type FeedItem struct {
	ID              int64
	ClientCompanyID int64
	Address         string
	DateTime        time.Time
	Notes           *string
	Vehicles        []FeedVehicle
	// Recycled выставляется, если заявку ранее отклонял хотя бы один
	// другой исполнитель и она вернулась в общую ленту
	Recycled  bool
	CreatedAt time.Time
}

// Response модель ответа ленты
type Response struct {
	Items []FeedItem
	Total int64
}

func feedItemFromDomain(r *domain.WashRequest, recycled bool) FeedItem {
	vehicles := make([]FeedVehicle, 0, len(r.Vehicles))
	for _, v := range r.Vehicles {
		vehicles = append(vehicles, FeedVehicle{
			VehicleID:   v.VehicleID,
			ServiceType: string(v.ServiceType),
		})
	}

	return FeedItem{
		ID:              r.ID,
		ClientCompanyID: r.ClientCompanyID,
		Address:         r.Address,
		DateTime:        r.DateTime,
		Notes:           r.Notes,
		Vehicles:        vehicles,
		Recycled:        recycled,
		CreatedAt:       r.CreatedAt,
	}
}
