package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/mehdios/senteur/internal/model"
)

// KafkaProducer publishes order events to a Kafka topic via an async
// producer. Used when several replicas should share one notification
// pipeline.
type KafkaProducer struct {
	asyncProducer sarama.AsyncProducer
	topic         string
	log           *slog.Logger
	wg            sync.WaitGroup
	closeOnce     sync.Once
}

func NewKafkaProducer(asyncProducer sarama.AsyncProducer, topic string, log *slog.Logger) *KafkaProducer {
	if topic == "" {
		panic("NewKafkaProducer: topic must not be empty")
	}
	return &KafkaProducer{
		asyncProducer: asyncProducer,
		topic:         topic,
		log:           log.With("component", "kafka-producer"),
	}
}

// Start launches background handlers for the success and error channels.
func (p *KafkaProducer) Start(ctx context.Context) {
	p.wg.Add(2)
	go p.handleSuccess(ctx)
	go p.handleErrors(ctx)
}

func (p *KafkaProducer) handleSuccess(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case msg, ok := <-p.asyncProducer.Successes():
			if !ok {
				return
			}
			p.log.Debug("event delivered",
				slog.String("topic", msg.Topic),
				slog.Int64("offset", msg.Offset))
		case <-ctx.Done():
			return
		}
	}
}

func (p *KafkaProducer) handleErrors(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case err, ok := <-p.asyncProducer.Errors():
			if !ok {
				return
			}
			p.log.Error("event delivery failed",
				slog.String("topic", err.Msg.Topic),
				slog.Any("error", err.Err))
		case <-ctx.Done():
			return
		}
	}
}

// Publish queues the event onto the topic, keyed by order id.
func (p *KafkaProducer) Publish(ctx context.Context, ev model.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(ev.Order.ID),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	select {
	case p.asyncProducer.Input() <- msg:
		p.log.Debug("event queued",
			slog.String("topic", p.topic),
			slog.String("order_id", ev.Order.ID))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts down the producer and waits for the channel handlers.
func (p *KafkaProducer) Close() {
	p.closeOnce.Do(func() {
		p.log.Info("closing kafka producer")
		p.asyncProducer.AsyncClose()
		p.wg.Wait()
	})
}
