package domain

import "time"

// Provider represents a mobile wash provider profile
// Используется как вход фильтра видимости; CRUD профиля живет в другом сервисе
type Provider struct {
	ID       int64
	BaseCity string
	RadiusKm int
	Services []ServiceType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Offers returns true if the provider offers the given service type
func (p *Provider) Offers(serviceType ServiceType) bool {
	for _, s := range p.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}
