package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена (закрыта или вычищена)
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSessionExists возвращается при попытке создать сессию с занятым ID
	ErrSessionExists = errors.New("session.repository: session already exists")
)
