package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/mehdios/senteur/internal/model"
)

// KafkaConsumer drains order events from a topic using a consumer group
// and hands them to the notifier.
type KafkaConsumer struct {
	topic         string
	consumerGroup sarama.ConsumerGroup
	handler       Handler
	log           *slog.Logger
}

func NewKafkaConsumer(
	topic string,
	consumerGroup sarama.ConsumerGroup,
	handler Handler,
	log *slog.Logger,
) *KafkaConsumer {
	return &KafkaConsumer{
		topic:         topic,
		consumerGroup: consumerGroup,
		handler:       handler,
		log:           log.With("component", "kafka-consumer"),
	}
}

// Start begins the consumer loop. It blocks until the context is cancelled
// or the consumer group is closed.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	defer func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Warn("failed to close consumer group", slog.Any("error", err))
		}
	}()

	c.log.Info("kafka consumer started", slog.String("topic", c.topic))

	backoff := 1 * time.Second
	for {
		err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
		if err != nil {
			c.log.Error("error consuming events", slog.Any("error", err))

			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return err
			}

			// back off on transient errors
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}

		if ctx.Err() != nil {
			c.log.Info("context cancelled, stopping consumer")
			return ctx.Err()
		}
	}
}

func (c *KafkaConsumer) Setup(session sarama.ConsumerGroupSession) error {
	for topic, partitions := range session.Claims() {
		c.log.Info("partition assignment",
			slog.String("topic", topic),
			slog.Any("partitions", partitions))
	}
	return nil
}

func (c *KafkaConsumer) Cleanup(_ sarama.ConsumerGroupSession) error {
	return nil
}

func (c *KafkaConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var ev model.OrderEvent
		if err := json.Unmarshal(message.Value, &ev); err != nil {
			c.log.Error("failed to decode event", slog.Any("error", err))
			// skip undecodable messages
			session.MarkMessage(message, "")
			continue
		}

		if err := c.handler.HandleOrderEvent(session.Context(), ev); err != nil {
			c.log.Error("event handling failed",
				slog.String("order_id", ev.Order.ID),
				slog.Any("error", err))
		}

		// notification delivery is best-effort; the offset is committed
		// either way so the pipeline never replays old orders
		session.MarkMessage(message, "")
	}
	return nil
}
