package intents

import "errors"

var (
	// ErrEncode возвращается, если намерение не удалось сериализовать
	ErrEncode = errors.New("intents: failed to encode intent")

	// ErrPublish возвращается при ошибке отправки в брокер
	ErrPublish = errors.New("intents: failed to publish intent")

	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("intents: failed to connect to broker")
)
