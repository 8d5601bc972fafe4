package intents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует намерения в топик Kafka.
// Ключ сообщения - ID сессии, поэтому намерения одной сессии попадают в одну партицию по порядку.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    Logger
}

// NewKafkaPublisher создает издателя поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, log Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	log.Info("Kafka intent publisher configured: brokers=%v, topic=%s", brokers, topic)

	return &KafkaPublisher{writer: writer, topic: topic, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, intent domain.Intent) error {
	msg, err := toKafkaMessage(intent)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to write intent to Kafka: kind=%s, session_id=%s, error=%v", intent.Kind, intent.SessionID, err)
		return fmt.Errorf("%w: kafka topic %s: %v", ErrPublish, p.topic, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(intent domain.Intent) (kafka.Message, error) {
	body, err := json.Marshal(intent)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return kafka.Message{
		Key:   []byte(intent.SessionID),
		Value: body,
		Time:  intent.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(intent.Kind)},
		},
	}, nil
}
