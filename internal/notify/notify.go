package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/model"
)

// Event announces that a dataset snapshot was rewritten
type Event struct {
	Dataset string        `json:"dataset"`
	BusType model.BusType `json:"busType"`
	Count   int           `json:"count"`
	RunID   string        `json:"runId"`
	At      time.Time     `json:"at"`
}

// Notifier publishes snapshot events to downstream consumers
type Notifier interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoOp discards every event
type NoOp struct{}

func (NoOp) Publish(ctx context.Context, e Event) error { return nil }
func (NoOp) Close() error                               { return nil }

// publisher is the part of *amqp.Channel the notifier uses
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes events as JSON to a durable RabbitMQ queue
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel publisher
	queue   string
	logger  *zap.SugaredLogger
}

// NewAMQPNotifier dials url and declares queue
func NewAMQPNotifier(url, queue string, logger *zap.SugaredLogger) (*AMQPNotifier, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &AMQPNotifier{conn: conn, channel: channel, queue: queue, logger: logger}, nil
}

func (n *AMQPNotifier) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = n.channel.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.At,
		MessageId:    e.RunID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", e.Dataset, err)
	}

	n.logger.Debugw("Notify: published event", "queue", n.queue, "dataset", e.Dataset, "count", e.Count)
	return nil
}

func (n *AMQPNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		return err
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// New connects to url, or returns NoOp when url is empty or unreachable
func New(url, queue string, logger *zap.SugaredLogger) Notifier {
	if url == "" {
		return NoOp{}
	}
	n, err := NewAMQPNotifier(url, queue, logger)
	if err != nil {
		logger.Warnw("Notify: rabbitmq unavailable, events disabled", "error", err)
		return NoOp{}
	}
	return n
}
