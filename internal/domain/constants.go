package domain

// Business validation constants
const (
	MaxAddressLength      = 500
	MaxNotesLength        = 500
	MaxInvoiceURLLength   = 1000
	MaxVehiclesPerRequest = 50
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ExpirableStatuses статусы, из которых заявка переводится в cancelled
// при прохождении запланированного времени
var ExpirableStatuses = []WashRequestStatus{
	StatusPending,
	StatusAccepted,
}

// TerminalStatuses статусы, из которых переходы запрещены
var TerminalStatuses = []WashRequestStatus{
	StatusCompleted,
	StatusCancelled,
}

// ValidServiceTypes допустимые типы услуг в составе заявки
var ValidServiceTypes = []ServiceType{
	ServiceExterior,
	ServiceInterior,
	ServiceComplete,
}

// IsValidServiceType проверяет, что строка является допустимым типом услуги
func IsValidServiceType(s ServiceType) bool {
	for _, valid := range ValidServiceTypes {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValidStatus проверяет, что строка является допустимым статусом заявки
func IsValidStatus(s WashRequestStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
