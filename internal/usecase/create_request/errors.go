package create_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_request: invalid input data")

	// ErrNoVehicles возвращается, когда заявка создается без автомобилей
	ErrNoVehicles = errors.New("create_request: request must contain at least one vehicle")

	// ErrEmptyAddress возвращается при пустом адресе
	ErrEmptyAddress = errors.New("create_request: address must not be empty")

	// ErrInvalidDate возвращается, когда время мойки не минимум на завтра
	ErrInvalidDate = errors.New("create_request: date must be at least the next calendar day")

	// ErrInvalidServiceType возвращается при недопустимом типе услуги
	ErrInvalidServiceType = errors.New("create_request: invalid service type")

	// ErrDuplicateVehicle возвращается, когда один автомобиль указан дважды
	ErrDuplicateVehicle = errors.New("create_request: duplicate vehicle in request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_request: internal error")
)
