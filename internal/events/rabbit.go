package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitQueue publishes events to a durable RabbitMQ queue consumed by the
// analytics worker.
type RabbitQueue struct {
	ch    *amqp091.Channel
	queue string
}

// NewRabbitQueue declares the queue and returns a publisher bound to it.
func NewRabbitQueue(ch *amqp091.Channel, queue string) (*RabbitQueue, error) {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}
	return &RabbitQueue{ch: ch, queue: queue}, nil
}

// Submit publishes on a goroutine so the caller returns immediately.
// Publish failures are logged and dropped.
func (q *RabbitQueue) Submit(e Event) {
	go func() {
		body, err := json.Marshal(e)
		if err != nil {
			slog.Error("marshal event", "type", e.Type, "err", err)
			return
		}
		err = q.ch.PublishWithContext(
			context.Background(),
			"", q.queue, false, false,
			amqp091.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		if err != nil {
			slog.Error("publish event", "type", e.Type, "short_code", e.ShortCode, "err", err)
		}
	}()
}
