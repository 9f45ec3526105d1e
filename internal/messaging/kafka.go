package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/config"
)

// KafkaPublisher is the alternative broker backend, selected with
// BROKER=kafka. One JSON message per event, acked by the partition leader.
type KafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(cfg config.Kafka, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafkago.Message{Value: body}); err != nil {
		return fmt.Errorf("write to topic %s: %w", p.writer.Topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", p.writer.Topic),
		zap.Int("bytes", len(body)),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
