package provider_feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

func makeRequest(id int64, dateTime time.Time, services ...domain.ServiceType) *domain.WashRequest {
	vehicles := make([]domain.WashRequestVehicle, 0, len(services))
	for i, s := range services {
		vehicles = append(vehicles, domain.WashRequestVehicle{
			ID:            int64(i + 1),
			WashRequestID: id,
			VehicleID:     int64(100 + i),
			ServiceType:   s,
			Position:      i,
		})
	}

	return &domain.WashRequest{
		ID:              id,
		ClientCompanyID: 10,
		Address:         "Москва, ул. Ленина, 1",
		DateTime:        dateTime,
		Status:          domain.StatusPending,
		Vehicles:        vehicles,
	}
}

func TestMatchesServices(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1)

	tests := []struct {
		name     string
		services []domain.ServiceType
		request  *domain.WashRequest
		want     bool
	}{
		{
			name:     "provider offers all required services",
			services: []domain.ServiceType{domain.ServiceExterior, domain.ServiceInterior},
			request:  makeRequest(1, tomorrow, domain.ServiceExterior, domain.ServiceInterior),
			want:     true,
		},
		{
			name:     "one required service is missing",
			services: []domain.ServiceType{domain.ServiceExterior},
			request:  makeRequest(2, tomorrow, domain.ServiceExterior, domain.ServiceInterior),
			want:     false,
		},
		{
			name:     "single service match",
			services: []domain.ServiceType{domain.ServiceComplete},
			request:  makeRequest(3, tomorrow, domain.ServiceComplete),
			want:     true,
		},
		{
			name:     "complete does not substitute exterior",
			services: []domain.ServiceType{domain.ServiceComplete},
			request:  makeRequest(4, tomorrow, domain.ServiceExterior),
			want:     false,
		},
		{
			name:     "duplicate service types counted once",
			services: []domain.ServiceType{domain.ServiceExterior},
			request:  makeRequest(5, tomorrow, domain.ServiceExterior, domain.ServiceExterior),
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &domain.Provider{ID: 1, Services: tt.services}
			assert.Equal(t, tt.want, matchesServices(provider, tt.request))
		})
	}
}

func TestBuildFeed_ExcludesOwnDeclines(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	provider := &domain.Provider{ID: 1, Services: []domain.ServiceType{domain.ServiceExterior}}

	requests := []*domain.WashRequest{
		makeRequest(1, tomorrow, domain.ServiceExterior),
		makeRequest(2, tomorrow, domain.ServiceExterior),
		makeRequest(3, tomorrow, domain.ServiceExterior),
	}
	ownDeclines := map[int64]struct{}{2: {}}

	items := buildFeed(provider, requests, ownDeclines, map[int64]struct{}{})

	assert.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
}

func TestBuildFeed_RecycledFlag(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	provider := &domain.Provider{ID: 1, Services: []domain.ServiceType{domain.ServiceExterior}}

	requests := []*domain.WashRequest{
		makeRequest(1, tomorrow, domain.ServiceExterior),
		makeRequest(2, tomorrow, domain.ServiceExterior),
	}
	// Заявку 2 отклонил другой исполнитель, она вернулась в ленту
	anyDeclines := map[int64]struct{}{2: {}}

	items := buildFeed(provider, requests, map[int64]struct{}{}, anyDeclines)

	assert.Len(t, items, 2)
	assert.False(t, items[0].Recycled)
	assert.True(t, items[1].Recycled)
}

func TestBuildFeed_StrictServiceFilter(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	provider := &domain.Provider{ID: 1, Services: []domain.ServiceType{domain.ServiceExterior}}

	requests := []*domain.WashRequest{
		makeRequest(1, tomorrow, domain.ServiceExterior),
		makeRequest(2, tomorrow, domain.ServiceExterior, domain.ServiceInterior),
		makeRequest(3, tomorrow, domain.ServiceInterior),
	}

	items := buildFeed(provider, requests, map[int64]struct{}{}, map[int64]struct{}{})

	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
}

func TestBuildFeed_PreservesOrder(t *testing.T) {
	now := time.Now()
	provider := &domain.Provider{ID: 1, Services: []domain.ServiceType{domain.ServiceExterior}}

	requests := []*domain.WashRequest{
		makeRequest(5, now.AddDate(0, 0, 1), domain.ServiceExterior),
		makeRequest(2, now.AddDate(0, 0, 2), domain.ServiceExterior),
		makeRequest(9, now.AddDate(0, 0, 3), domain.ServiceExterior),
	}

	items := buildFeed(provider, requests, map[int64]struct{}{}, map[int64]struct{}{})

	assert.Len(t, items, 3)
	assert.Equal(t, int64(5), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(9), items[2].ID)
}

func TestBuildFeed_EmptyFeed(t *testing.T) {
	provider := &domain.Provider{ID: 1, Services: []domain.ServiceType{domain.ServiceExterior}}

	items := buildFeed(provider, nil, map[int64]struct{}{}, map[int64]struct{}{})

	assert.NotNil(t, items)
	assert.Empty(t, items)
}
