package worker

import (
	"context"
	"time"
)

// SessionSweeper удаляет простаивающие сессии
type SessionSweeper interface {
	SweepIdle(ctx context.Context, idleTTL time.Duration) int
}

// DraftPurger очищает просроченные черновики (нужен только in-memory хранилищу)
type DraftPurger interface {
	Purge(ctx context.Context) int
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
}
