package washrequests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("wash request not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на заявку
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при попытке перехода, недопустимого
	// из текущего статуса заявки
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
