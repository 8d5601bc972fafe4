package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена (закрыта или вычищена)
	ErrSessionNotFound = errors.New("session not found")

	// ErrListingNotFound возвращается, когда объявление не найдено
	ErrListingNotFound = errors.New("listing not found")

	// ErrListingUnavailable возвращается, когда сервис объявлений недоступен
	ErrListingUnavailable = errors.New("listing service unavailable")

	// ErrInvalidRange возвращается, когда выбранные даты отсутствуют или не проходят проверку доступности
	ErrInvalidRange = errors.New("selected date range is not valid")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions service: internal error")

	errStaleLoad = errors.New("availability load targets another listing")
)
