package drafts

import (
	"context"
	"time"
)

// DraftRepository интерфейс хранилища черновиков. Take читает и удаляет атомарно.
type DraftRepository interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Take(ctx context.Context, key string) ([]byte, error)
}

// Metrics интерфейс для метрик черновиков
type Metrics interface {
	ObserveDraftOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
