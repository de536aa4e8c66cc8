package provider_feed

import "errors"

var (
	// ErrProviderNotFound возвращается, когда профиль исполнителя не найден
	ErrProviderNotFound = errors.New("provider_feed: provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("provider_feed: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("provider_feed: internal error")
)
