package mq

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rehablink-io/Rehablink/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DialFunc produces a fresh broker connection; used for initial dial and
// reconnect.
type DialFunc func() (*amqp.Connection, error)

// tableCarrier adapts amqp.Table to TextMapCarrier for trace propagation.
type tableCarrier struct {
	table amqp.Table
}

func (c tableCarrier) Get(key string) string {
	if val, ok := c.table[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func (c tableCarrier) Set(key, value string) {
	c.table[key] = value
}

func (c tableCarrier) Keys() []string {
	keys := make([]string, 0, len(c.table))
	for k := range c.table {
		keys = append(keys, k)
	}
	return keys
}

type Publisher struct {
	ch   *amqp.Channel
	log  *zap.Logger
	cfg  *config.Config
	dial DialFunc
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, cfg *config.Config, dial DialFunc) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Side-effect exchanges are declared up front so consumers can bind
	// before the first state transition publishes anything.
	for _, ex := range []string{cfg.RabbitMQ.ExchangeName.Notification, cfg.RabbitMQ.ExchangeName.Activity} {
		if ex == "" {
			continue
		}
		if err := ch.ExchangeDeclare(ex, "topic", true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare exchange %s: %w", ex, err)
		}
	}

	return &Publisher{ch: ch, log: log, cfg: cfg, dial: dial}, nil
}

func (p *Publisher) Close() error { return p.ch.Close() }

func (p *Publisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	tracer := otel.Tracer(p.cfg.App.Name)
	ctx, span := tracer.Start(ctx, "rabbitmq.publish",
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", exchangeName),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
		))
	defer span.End()

	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, tableCarrier{table: headers})

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
		Headers:      headers,
	}

	if err := p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, publishing); err != nil {
		if p.ch.IsClosed() && p.dial != nil {
			if rerr := p.reconnect(); rerr == nil {
				err = p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, publishing)
			}
		}
		if err != nil {
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(attribute.Int("messaging.message.body.size", len(b)))
	return nil
}

func (p *Publisher) reconnect() error {
	conn, err := p.dial()
	if err != nil {
		p.log.Error("rabbitmq reconnect failed", zap.Error(err))
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	p.ch = ch
	p.log.Info("rabbitmq publisher reconnected")
	return nil
}

type Consumer struct {
	ch  *amqp.Channel
	q   amqp.Queue
	log *zap.Logger
}

func NewConsumer(conn *amqp.Connection, exchange, routingKey, queueName string, prefetch int, log *zap.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if prefetch <= 0 {
		prefetch = 10
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
		return nil, err
	}

	return &Consumer{ch: ch, q: q, log: log}, nil
}

func (c *Consumer) Close() error { return c.ch.Close() }

// Consume delivers each message body to fn; fn returning an error nacks with
// requeue, otherwise the delivery is acked.
func (c *Consumer) Consume(ctx context.Context, fn func(ctx context.Context, body []byte) error) error {
	deliveries, err := c.ch.Consume(c.q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			dctx := otel.GetTextMapPropagator().Extract(ctx, tableCarrier{table: d.Headers})
			if err := fn(dctx, d.Body); err != nil {
				c.log.Warn("consumer handler failed, requeueing", zap.Error(err))
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
