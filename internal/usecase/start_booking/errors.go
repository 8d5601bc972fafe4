package start_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRange возвращается, когда выбранные даты отсутствуют или не проходят проверку доступности
	ErrInvalidRange = errors.New("selected date range is not valid")

	// ErrAuthPending возвращается, пока статус аутентификации еще загружается
	ErrAuthPending = errors.New("authentication status is still loading")

	// ErrNoClientSession возвращается, когда черновик некуда сохранить
	ErrNoClientSession = errors.New("client session id is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
