package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/OnSightTeam/ordersvc/internal/models"
)

// Producer pushes envelopes onto Kafka from a single goroutine so request
// handlers never block on the broker.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	once    sync.Once
	service string
	log     *slog.Logger
}

func NewProducer(brokers []string, topic, service string, buf int, log *slog.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Error("kafka delivery failed", "topic", topic, "messages", len(messages), "error", err)
				}
			},
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		service: service,
		log:     log,
	}
}

// Start runs the send loop until ctx is cancelled or Close is called.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		defer func() {
			if err := p.w.Close(); err != nil {
				p.log.Error("kafka writer close failed", "error", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case m, ok := <-p.inbox:
				if !ok {
					return
				}
				p.write(m)
			}
		}
	}()
}

// drain flushes messages already queued without waiting for new ones.
func (p *Producer) drain() {
	for {
		select {
		case m, ok := <-p.inbox:
			if !ok {
				return
			}
			p.write(m)
		default:
			return
		}
	}
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.log.Error("kafka publish failed", "topic", p.w.Topic, "error", err)
	}
}

// OrderProcessed wraps a persisted order in a versioned envelope and queues
// it for delivery.
func (p *Producer) OrderProcessed(ctx context.Context, order *models.Order, req *models.OrderRequest) {
	env := newOrderProcessedEnvelope(ctx, p.service, order, req)
	p.Publish(PartitionKey(order.ID), MustMarshal(env),
		kafka.Header{Key: "x-event-type", Value: []byte(EventOrderProcessed)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

// Publish queues one message. It never blocks; when the inbox is full the
// message is dropped and logged.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	select {
	case p.inbox <- m:
	default:
		p.log.Warn("event dropped, producer inbox full", "topic", p.w.Topic)
	}
}

// Close stops intake and lets the send loop flush what is already queued.
// Callers must stop publishing before Close.
func (p *Producer) Close() { p.once.Do(func() { close(p.inbox) }) }

// WaitClosed blocks until the send loop has exited and the writer is closed.
func (p *Producer) WaitClosed() { <-p.closeCh }
