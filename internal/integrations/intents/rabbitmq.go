package intents

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// RabbitMQPublisher публикует намерения в topic-exchange, routing key = booking.intent.<kind>
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      Logger
}

// NewRabbitMQPublisher подключается к RabbitMQ и объявляет exchange
func NewRabbitMQPublisher(url, exchange string, log Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
	}

	log.Info("RabbitMQ intent publisher connected: exchange=%s", exchange)

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, intent domain.Intent) error {
	msg, err := toPublishing(intent)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		routingKey(intent), // routing key
		false,              // mandatory
		false,              // immediate
		msg,
	)
	if err != nil {
		p.log.Error("Failed to publish intent to RabbitMQ: kind=%s, session_id=%s, error=%v", intent.Kind, intent.SessionID, err)
		return fmt.Errorf("%w: exchange %s: %v", ErrPublish, p.exchange, err)
	}

	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

func routingKey(intent domain.Intent) string {
	return "booking.intent." + string(intent.Kind)
}

func toPublishing(intent domain.Intent) (amqp.Publishing, error) {
	body, err := json.Marshal(intent)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    intent.ID,
		Timestamp:    intent.OccurredAt,
		Type:         string(intent.Kind),
	}, nil
}
