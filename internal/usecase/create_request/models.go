package create_request

import (
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// VehicleAssignment автомобиль с выбранной услугой в составе заявки
type VehicleAssignment struct {
	VehicleID   int64
	ServiceType domain.ServiceType
}

// Request модель запроса на создание заявки
type Request struct {
	ClientCompanyID int64
	Address         string
	DateTime        time.Time
	Notes           *string
	Vehicles        []VehicleAssignment
}

// Response модель ответа создания заявки
type Response struct {
	ID              int64
	ClientCompanyID int64
	Address         string
	DateTime        time.Time
	Notes           *string
	Status          string
	Vehicles        []VehicleAssignment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
