package washrequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("washrequest.repository: wash request not found")

	// ErrStateConflict возвращается, когда условное обновление не затронуло
	// ни одной строки: заявка существует, но её состояние уже не то,
	// при котором переход разрешен (например, заявку успел принять другой
	// исполнитель). Вызывающий слой перечитывает заявку и классифицирует
	// конфликт точнее
	ErrStateConflict = errors.New("washrequest.repository: request state conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("washrequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("washrequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("washrequest.repository: failed to scan row")
)
