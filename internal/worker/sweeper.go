package worker

import (
	"context"
	"time"
)

// IdleSweeper периодически закрывает брошенные сессии и чистит просроченные черновики
type IdleSweeper struct {
	sessions SessionSweeper
	drafts   DraftPurger
	idleTTL  time.Duration
	interval time.Duration
	logger   Logger
}

// NewIdleSweeper создает воркер. drafts может быть nil, если черновики живут в Redis
func NewIdleSweeper(sessions SessionSweeper, drafts DraftPurger, idleTTL, interval time.Duration, logger Logger) *IdleSweeper {
	return &IdleSweeper{
		sessions: sessions,
		drafts:   drafts,
		idleTTL:  idleTTL,
		interval: interval,
		logger:   logger,
	}
}

// Start блокируется до отмены ctx
func (w *IdleSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Idle sweeper started: interval=%s idle_ttl=%s", w.interval, w.idleTTL)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Idle sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep выполняет один проход очистки
func (w *IdleSweeper) sweep(ctx context.Context) {
	sessions := w.sessions.SweepIdle(ctx, w.idleTTL)

	var drafts int
	if w.drafts != nil {
		drafts = w.drafts.Purge(ctx)
	}

	w.logger.Debug("Idle sweep completed: sessions=%d drafts=%d", sessions, drafts)
}
