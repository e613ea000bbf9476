package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one delivery body. A non-nil error rejects the message
// without requeue.
type HandlerFunc func(ctx context.Context, body []byte) error

// Consumer drains a queue and hands each message to a HandlerFunc.
type Consumer struct {
	conn     *amqp.Connection
	queue    string
	prefetch int
	log      *zap.Logger
}

func NewConsumer(conn *amqp.Connection, queue string, prefetch int, log *zap.Logger) *Consumer {
	return &Consumer{conn: conn, queue: queue, prefetch: prefetch, log: log}
}

// Start consumes until ctx is cancelled. It returns once the channel is set up;
// delivery handling runs on its own goroutine.
func (c *Consumer) Start(ctx context.Context, fn HandlerFunc) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return err
	}
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		_ = ch.Close()
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return err
	}

	go func() {
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := fn(ctx, d.Body); err != nil {
					c.log.Sugar().Errorw("consume message", "queue", c.queue, "err", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}
