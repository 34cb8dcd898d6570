package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"rxintake/pkg/platform/circuit"
)

// Producer is the subset of *kgo.Client the Kafka publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher buffers events in memory and ships them to Kafka in batches
// from Run. While the breaker is open, batches go to the fallback publisher.
type KafkaPublisher struct {
	producer  Producer
	topic     string
	buffer    *RingBuffer
	breaker   *circuit.Breaker
	fallback  Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type KafkaOption func(*KafkaPublisher)

func WithFlushInterval(d time.Duration) KafkaOption {
	return func(p *KafkaPublisher) { p.interval = d }
}

func WithBatchSize(n int) KafkaOption {
	return func(p *KafkaPublisher) { p.batchSize = n }
}

func WithBufferCapacity(n int) KafkaOption {
	return func(p *KafkaPublisher) { p.buffer = NewRingBuffer(n) }
}

func WithBreaker(b *circuit.Breaker) KafkaOption {
	return func(p *KafkaPublisher) { p.breaker = b }
}

func WithFallback(fallback Publisher) KafkaOption {
	return func(p *KafkaPublisher) { p.fallback = fallback }
}

func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) { p.logger = logger }
}

func NewKafkaPublisher(producer Producer, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}
	p := &KafkaPublisher{
		producer:  producer,
		topic:     topic,
		buffer:    NewRingBuffer(0),
		breaker:   circuit.New("audit-kafka"),
		logger:    slog.Default(),
		interval:  time.Second,
		batchSize: 256,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Emit enqueues the event without blocking.
func (p *KafkaPublisher) Emit(_ context.Context, event Event) error {
	p.buffer.Enqueue(event)
	return nil
}

// Run flushes on every tick until ctx is cancelled, then drains what is left
// with a short grace period.
func (p *KafkaPublisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			p.Flush(drainCtx)
			return ctx.Err()
		case <-ticker.C:
			p.Flush(ctx)
		}
	}
}

// Flush ships everything currently buffered.
func (p *KafkaPublisher) Flush(ctx context.Context) {
	for {
		batch := p.buffer.DequeueBatch(p.batchSize)
		if len(batch) == 0 {
			return
		}
		if err := p.send(ctx, batch); err != nil {
			p.logger.WarnContext(ctx, "audit batch not delivered to kafka", "events", len(batch), "error", err)
			p.divert(ctx, batch)
			return
		}
	}
}

func (p *KafkaPublisher) send(ctx context.Context, batch []Event) error {
	if !p.breaker.Allow() {
		return circuit.ErrOpen
	}
	records := make([]*kgo.Record, 0, len(batch))
	for _, event := range batch {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode audit event: %w", err)
		}
		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(event.SessionID),
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: "category", Value: []byte(event.Category)},
			},
		})
	}
	if err := p.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "audit kafka circuit opened")
		}
		return err
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "audit kafka circuit closed")
	}
	return nil
}

func (p *KafkaPublisher) divert(ctx context.Context, batch []Event) {
	if p.fallback == nil {
		for _, event := range batch {
			p.buffer.Enqueue(event)
		}
		return
	}
	for _, event := range batch {
		_ = p.fallback.Emit(ctx, event)
	}
}

// Pending returns the number of buffered events.
func (p *KafkaPublisher) Pending() int { return p.buffer.Len() }
