package intents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/logger"
)

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Warn(string, ...interface{}) {}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testIntent() domain.Intent {
	return domain.Intent{
		ID:               "intent-1",
		Kind:             domain.IntentChargeDeposit,
		SessionID:        "session-1",
		ListingID:        42,
		StartDate:        "2024-07-01",
		EndDate:          "2024-07-04",
		ProtectionChoice: domain.ProtectionDeposit,
		ClaimStatus:      domain.ClaimNone,
		OccurredAt:       time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "booking-intents", log: logger.NewNop()}

	require.NoError(t, p.Publish(context.Background(), testIntent()))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "session-1", string(msg.Key))
	assert.Equal(t, "charge_deposit", string(msg.Headers[0].Value))

	var decoded domain.Intent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, domain.IntentChargeDeposit, decoded.Kind)
	assert.Equal(t, int64(42), decoded.ListingID)
	assert.True(t, testIntent().OccurredAt.Equal(decoded.OccurredAt))
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	log := &recordingLogger{}
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "booking-intents", log: log}

	err := p.Publish(context.Background(), testIntent())

	assert.ErrorIs(t, err, ErrPublish)
	assert.Len(t, log.errors, 1)
}

func TestToPublishing(t *testing.T) {
	msg, err := toPublishing(testIntent())
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "intent-1", msg.MessageId)
	assert.Equal(t, "charge_deposit", msg.Type)
	assert.Equal(t, "booking.intent.charge_deposit", routingKey(testIntent()))
	assert.Contains(t, string(msg.Body), `"sessionId":"session-1"`)
}

func TestLogPublisher(t *testing.T) {
	log := &recordingLogger{}

	require.NoError(t, NewLogPublisher(log).Publish(context.Background(), testIntent()))

	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "Intent charge_deposit")
	assert.Contains(t, log.infos[0], `"listingId":42`)
}
