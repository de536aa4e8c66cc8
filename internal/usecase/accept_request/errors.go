package accept_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("accept_request: wash request not found")

	// ErrAlreadyClaimed возвращается, когда заявку успел принять другой
	// исполнитель. Отличается от прочих ошибок, чтобы UI мог показать
	// "заявку только что забрали", а не общий сбой
	ErrAlreadyClaimed = errors.New("accept_request: request already claimed by another provider")

	// ErrInvalidTransition возвращается, когда заявка в терминальном статусе
	ErrInvalidTransition = errors.New("accept_request: request is not acceptable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_request: internal error")
)
