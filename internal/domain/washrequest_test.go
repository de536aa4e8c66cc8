package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WashRequestService/pkg/ptr"
)

func TestWashRequest_CanBeAccepted(t *testing.T) {
	tests := []struct {
		name     string
		status   WashRequestStatus
		provider *int64
		want     bool
	}{
		{"pending unbound", StatusPending, nil, true},
		{"pending bound", StatusPending, ptr.Ptr(int64(7)), false},
		{"accepted", StatusAccepted, ptr.Ptr(int64(7)), false},
		{"in_progress", StatusInProgress, ptr.Ptr(int64(7)), false},
		{"completed", StatusCompleted, ptr.Ptr(int64(7)), false},
		{"cancelled", StatusCancelled, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WashRequest{Status: tt.status, ProviderID: tt.provider}
			assert.Equal(t, tt.want, r.CanBeAccepted())
		})
	}
}

func TestWashRequest_TerminalStatusesRejectEverything(t *testing.T) {
	for _, status := range TerminalStatuses {
		r := WashRequest{Status: status}

		assert.True(t, r.IsTerminal(), "status %s", status)
		assert.False(t, r.CanBeAccepted(), "status %s", status)
		assert.False(t, r.CanBeStarted(), "status %s", status)
		assert.False(t, r.CanBeCompleted(), "status %s", status)
		assert.False(t, r.CanBeCancelledByClient(), "status %s", status)
		assert.False(t, r.CanBeCancelledByProvider(), "status %s", status)
	}
}

func TestWashRequest_IsOverdue(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		status   WashRequestStatus
		dateTime time.Time
		want     bool
	}{
		{"pending past", StatusPending, past, true},
		{"accepted past", StatusAccepted, past, true},
		{"pending future", StatusPending, future, false},
		{"in_progress past", StatusInProgress, past, false},
		{"completed past", StatusCompleted, past, false},
		{"cancelled past", StatusCancelled, past, false},
		{"pending exactly now", StatusPending, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WashRequest{Status: tt.status, DateTime: tt.dateTime}
			assert.Equal(t, tt.want, r.IsOverdue(now))
		})
	}
}

func TestWashRequest_IsBoundTo(t *testing.T) {
	r := WashRequest{Status: StatusAccepted, ProviderID: ptr.Ptr(int64(42))}

	assert.True(t, r.IsBoundTo(42))
	assert.False(t, r.IsBoundTo(43))

	unbound := WashRequest{Status: StatusPending}
	assert.False(t, unbound.IsBoundTo(42))
}

func TestWashRequest_RequiredServiceTypes(t *testing.T) {
	r := WashRequest{
		Vehicles: []WashRequestVehicle{
			{VehicleID: 1, ServiceType: ServiceExterior},
			{VehicleID: 2, ServiceType: ServiceInterior},
			{VehicleID: 3, ServiceType: ServiceExterior},
		},
	}

	assert.Equal(t, []ServiceType{ServiceExterior, ServiceInterior}, r.RequiredServiceTypes())
}

func TestProvider_Offers(t *testing.T) {
	p := Provider{Services: []ServiceType{ServiceExterior, ServiceComplete}}

	assert.True(t, p.Offers(ServiceExterior))
	assert.True(t, p.Offers(ServiceComplete))
	assert.False(t, p.Offers(ServiceInterior))
}

func TestIsValidServiceType(t *testing.T) {
	assert.True(t, IsValidServiceType(ServiceExterior))
	assert.True(t, IsValidServiceType(ServiceInterior))
	assert.True(t, IsValidServiceType(ServiceComplete))
	assert.False(t, IsValidServiceType("polish"))
}
