package create_request

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	"github.com/m04kA/SMC-WashRequestService/pkg/ptr"
)

func validTestRequest(now time.Time) *Request {
	return &Request{
		ClientCompanyID: 10,
		Address:         "Москва, ул. Ленина, 1",
		DateTime:        now.AddDate(0, 0, 2),
		Vehicles: []VehicleAssignment{
			{VehicleID: 1, ServiceType: domain.ServiceExterior},
			{VehicleID: 2, ServiceType: domain.ServiceComplete},
		},
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, validateRequest(validTestRequest(now), now))
}

func TestValidateRequest_Errors(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "non-positive client id",
			mutate:  func(req *Request) { req.ClientCompanyID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty address",
			mutate:  func(req *Request) { req.Address = "   " },
			wantErr: ErrEmptyAddress,
		},
		{
			name:    "address too long",
			mutate:  func(req *Request) { req.Address = strings.Repeat("a", domain.MaxAddressLength+1) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "notes too long",
			mutate:  func(req *Request) { req.Notes = ptr.Ptr(strings.Repeat("n", domain.MaxNotesLength+1)) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero date",
			mutate:  func(req *Request) { req.DateTime = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no vehicles",
			mutate:  func(req *Request) { req.Vehicles = nil },
			wantErr: ErrNoVehicles,
		},
		{
			name: "invalid service type",
			mutate: func(req *Request) {
				req.Vehicles = []VehicleAssignment{{VehicleID: 1, ServiceType: "polish"}}
			},
			wantErr: ErrInvalidServiceType,
		},
		{
			name: "duplicate vehicle",
			mutate: func(req *Request) {
				req.Vehicles = []VehicleAssignment{
					{VehicleID: 1, ServiceType: domain.ServiceExterior},
					{VehicleID: 1, ServiceType: domain.ServiceInterior},
				}
			},
			wantErr: ErrDuplicateVehicle,
		},
		{
			name: "non-positive vehicle id",
			mutate: func(req *Request) {
				req.Vehicles = []VehicleAssignment{{VehicleID: 0, ServiceType: domain.ServiceExterior}}
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTestRequest(now)
			tt.mutate(req)

			err := validateRequest(req, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateDateTime(t *testing.T) {
	// 1 сентября, 23:30 по UTC
	now := time.Date(2026, 9, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dateTime time.Time
		wantErr  bool
	}{
		{
			name:     "later today rejected",
			dateTime: time.Date(2026, 9, 1, 23, 45, 0, 0, time.UTC),
			wantErr:  true,
		},
		{
			name:     "tomorrow midnight accepted",
			dateTime: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:     "tomorrow morning accepted",
			dateTime: time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),
			wantErr:  false,
		},
		{
			name:     "past date rejected",
			dateTime: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDateTime(tt.dateTime, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
