// Package service holds integrations the handlers call into.  This file
// publishes audit events to RabbitMQ.  Errors are logged and returned so
// callers can ignore them without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/queue"
)

// AuditPublisher sends audit events to a durable queue.  A connection is
// dialled per event; dashboard mutations are rare enough for that.
type AuditPublisher struct {
	URL     string
	Queue   string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewAuditPublisher returns a publisher for the given broker and queue.
func NewAuditPublisher(url, queueName string, log logrus.FieldLogger) *AuditPublisher {
	return &AuditPublisher{URL: url, Queue: queueName, Timeout: 5 * time.Second, Log: log}
}

// Publish marshals ev and publishes it as a persistent message.
func (p *AuditPublisher) Publish(ctx context.Context, ev queue.AuditEvent) error {
	log := p.Log.WithFields(logrus.Fields{"event_id": ev.ID, "action": ev.Action, "entity": ev.Entity})

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.Timeout)})
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Warn("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}
