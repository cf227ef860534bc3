// Package eventpublisher publishes licensing domain events to RabbitMQ.
// Publishing is strictly best-effort: errors are logged and returned so
// callers can ignore failures without interrupting the request flow.
package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/logger"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/queue"
)

// Publisher publishes events to a RabbitMQ broker. A nil *Publisher is
// valid and silently drops all events, which is how the service runs
// when no broker URL is configured.
type Publisher struct {
	url string
}

// New returns a Publisher for the given broker URL, or nil when the URL
// is empty (event publishing disabled).
func New(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishActivated publishes a LicenseActivatedEvent to the
// "license.activated" queue.
func (p *Publisher) PublishActivated(ctx context.Context, event queue.LicenseActivatedEvent) error {
	return p.publish(ctx, queue.QueueLicenseActivated, event)
}

// PublishDeactivated publishes a LicenseDeactivatedEvent to the
// "license.deactivated" queue.
func (p *Publisher) PublishDeactivated(ctx context.Context, event queue.LicenseDeactivatedEvent) error {
	return p.publish(ctx, queue.QueueLicenseDeactivated, event)
}

// publish dials the broker, declares the durable queue and sends one
// persistent JSON message. Connections are short-lived on purpose: the
// event volume here is a trickle and a held connection is one more
// thing to babysit. The function never panics; any error is logged and
// returned for the caller to ignore.
func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	if p == nil {
		return nil
	}
	log := logger.FromContext(ctx)

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn("rabbitmq: marshal failed", zap.Error(err))
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(pubCtx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		log.Warn("rabbitmq: publish failed", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	return nil
}
