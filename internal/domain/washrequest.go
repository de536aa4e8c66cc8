package domain

import "time"

// WashRequestStatus represents the status of a wash request
type WashRequestStatus string

const (
	StatusPending    WashRequestStatus = "pending"
	StatusAccepted   WashRequestStatus = "accepted"
	StatusInProgress WashRequestStatus = "in_progress"
	StatusCompleted  WashRequestStatus = "completed"
	StatusCancelled  WashRequestStatus = "cancelled"
)

// ServiceType represents a wash service type
type ServiceType string

const (
	ServiceExterior ServiceType = "exterior"
	ServiceInterior ServiceType = "interior"
	ServiceComplete ServiceType = "complete"
)

// WashRequest represents a fleet wash request in the system
type WashRequest struct {
	ID              int64
	ClientCompanyID int64
	ProviderID      *int64 // NULL до принятия заявки исполнителем

	Address    string
	DateTime   time.Time
	Notes      *string
	InvoiceURL *string

	Status WashRequestStatus

	// Состав заявки: автомобили с выбранными услугами
	// Неизменяем после создания заявки
	Vehicles []WashRequestVehicle

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WashRequestVehicle binds a client vehicle to a service type within a request
type WashRequestVehicle struct {
	ID            int64
	WashRequestID int64
	VehicleID     int64
	ServiceType   ServiceType
	Position      int
}

// IsTerminal returns true if no further transitions are allowed
func (r *WashRequest) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// CanBeAccepted returns true if a provider may claim the request
func (r *WashRequest) CanBeAccepted() bool {
	return r.Status == StatusPending && r.ProviderID == nil
}

// CanBeStarted returns true if the bound provider may start the work
func (r *WashRequest) CanBeStarted() bool {
	return r.Status == StatusAccepted
}

// CanBeCompleted returns true if the bound provider may complete the work
func (r *WashRequest) CanBeCompleted() bool {
	return r.Status == StatusInProgress
}

// CanBeCancelledByClient returns true if the owning client may cancel the request
func (r *WashRequest) CanBeCancelledByClient() bool {
	return r.Status == StatusPending || r.Status == StatusAccepted
}

// CanBeCancelledByProvider returns true if the bound provider may release the request
func (r *WashRequest) CanBeCancelledByProvider() bool {
	return r.Status == StatusAccepted
}

// IsBoundTo returns true if the request is claimed by the given provider
func (r *WashRequest) IsBoundTo(providerID int64) bool {
	return r.ProviderID != nil && *r.ProviderID == providerID
}

// IsOverdue returns true if the scheduled instant has passed while the
// request is still pending or accepted. Такие заявки переводит в cancelled
// ленивый sweep перед чтением списков.
func (r *WashRequest) IsOverdue(now time.Time) bool {
	if r.Status != StatusPending && r.Status != StatusAccepted {
		return false
	}
	return r.DateTime.Before(now)
}

// RequiredServiceTypes returns the distinct service types the request needs
func (r *WashRequest) RequiredServiceTypes() []ServiceType {
	seen := make(map[ServiceType]struct{}, len(r.Vehicles))
	types := make([]ServiceType, 0, len(r.Vehicles))

	for _, v := range r.Vehicles {
		if _, ok := seen[v.ServiceType]; ok {
			continue
		}
		seen[v.ServiceType] = struct{}{}
		types = append(types, v.ServiceType)
	}

	return types
}

// SweepScope ограничивает область ленивого sweep просроченных заявок
// Пустой scope означает все заявки (лента исполнителей)
type SweepScope struct {
	ClientCompanyID *int64 // Только заявки конкретного клиента
	ProviderID      *int64 // Только заявки, принятые конкретным исполнителем
}
