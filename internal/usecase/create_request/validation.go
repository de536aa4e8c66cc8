package create_request

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.ClientCompanyID <= 0 {
		return fmt.Errorf("%w: clientCompanyId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Address) == "" {
		return ErrEmptyAddress
	}

	if len(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}

	if err := validateDateTime(req.DateTime, now); err != nil {
		return err
	}

	return validateVehicles(req.Vehicles)
}

// validateDateTime проверяет, что мойка запланирована минимум на следующий
// календарный день. Проверка действует только при создании: заявка может
// стать исторической уже после создания - такие заявки закрывает sweep
func validateDateTime(dateTime, now time.Time) error {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1)

	if dateTime.Before(tomorrow) {
		return ErrInvalidDate
	}

	return nil
}

// validateVehicles проверяет состав заявки
func validateVehicles(vehicles []VehicleAssignment) error {
	if len(vehicles) == 0 {
		return ErrNoVehicles
	}

	if len(vehicles) > domain.MaxVehiclesPerRequest {
		return fmt.Errorf("%w: at most %d vehicles per request", ErrInvalidInput, domain.MaxVehiclesPerRequest)
	}

	seen := make(map[int64]struct{}, len(vehicles))
	for _, v := range vehicles {
		if v.VehicleID <= 0 {
			return fmt.Errorf("%w: vehicleId must be positive", ErrInvalidInput)
		}

		if !domain.IsValidServiceType(v.ServiceType) {
			return fmt.Errorf("%w: %q", ErrInvalidServiceType, v.ServiceType)
		}

		if _, ok := seen[v.VehicleID]; ok {
			return fmt.Errorf("%w: vehicleId=%d", ErrDuplicateVehicle, v.VehicleID)
		}
		seen[v.VehicleID] = struct{}{}
	}

	return nil
}
