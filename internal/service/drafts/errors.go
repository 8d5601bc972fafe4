package drafts

import "errors"

var (
	// ErrNoClientSession возвращается, когда нет ключа браузерной сессии, к которому привязать черновик
	ErrNoClientSession = errors.New("client session id is required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("drafts service: internal error")
)
