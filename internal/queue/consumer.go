package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Store persists consumed audit events.
type Store interface {
	InsertAuditEvent(ctx context.Context, ev AuditEvent) error
}

// ErrBadMessage marks a delivery that can never be stored.
var ErrBadMessage = errors.New("queue: bad message")

// StartAuditConsumer connects to RabbitMQ, declares the durable audit
// queue and stores every delivery.  It reconnects with exponential
// backoff and returns only when ctx is cancelled.  Undecodable messages
// are rejected without requeue; storage failures are requeued.
func StartAuditConsumer(ctx context.Context, url, queueName string, store Store, log logrus.FieldLogger) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("audit-consumer: dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, queueName, store, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("audit-consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, queueName string, store Store, log logrus.FieldLogger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("audit-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			err := HandleMessage(ctx, d.Body, store)
			switch {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, ErrBadMessage):
				log.WithError(err).Error("audit-consumer: dropping message")
				_ = d.Nack(false, false)
			default:
				log.WithError(err).Error("audit-consumer: store failed; requeueing")
				_ = d.Nack(false, true)
			}
		}
	}
}

// HandleMessage decodes one delivery body and stores it.
func HandleMessage(ctx context.Context, body []byte, store Store) error {
	var ev AuditEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", ErrBadMessage, err)
	}
	if ev.ID == "" || ev.Action == "" || ev.Entity == "" {
		return fmt.Errorf("%w: missing id, action or entity", ErrBadMessage)
	}
	if err := store.InsertAuditEvent(ctx, ev); err != nil {
		return fmt.Errorf("store event %s: %w", ev.ID, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
