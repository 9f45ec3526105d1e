package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/config"
	"github.com/venicelab/orders/internal/pkg/retry"
)

// RabbitPublisher publishes domain events to a durable topic exchange.
// Delivery is best effort: one publish attempt per event, no confirms.
type RabbitPublisher struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	exchange   string
	routingKey string
	logger     *zap.Logger
}

func NewRabbitPublisher(ctx context.Context, cfg config.Rabbit, policy retry.Policy, logger *zap.Logger) (*RabbitPublisher, error) {
	var conn *amqp.Connection
	err := retry.Do(ctx, policy, func() error {
		var dialErr error
		conn, dialErr = amqp.Dial(cfg.URL)
		if dialErr != nil {
			logger.Warn("rabbitmq dial failed, will retry", zap.Error(dialErr))
		}
		return dialErr
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	return &RabbitPublisher{
		conn:       conn,
		ch:         ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.ch.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish to %s/%s: %w", p.exchange, p.routingKey, err)
	}

	p.logger.Debug("event published",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", p.routingKey),
		zap.Int("bytes", len(body)),
	)
	return nil
}

func (p *RabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
