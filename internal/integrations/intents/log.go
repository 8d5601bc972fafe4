package intents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// LogPublisher пишет намерения в лог. Используется, когда брокер не настроен.
type LogPublisher struct {
	log Logger
}

func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, intent domain.Intent) error {
	body, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	p.log.Info("Intent %s: %s", intent.Kind, body)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
