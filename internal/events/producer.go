package events

import (
	"context"
	"strconv"
	"sync"
	"time"

	"marketplace-be/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer is an async Kafka publisher. Publish enqueues into a buffered
// inbox and a single goroutine started by Start drains it into the writer.
type Producer struct {
	w     messageWriter
	inbox chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				logger.L().Error("kafka delivery failed",
					zap.String("topic", topic),
					zap.Int("messages", len(msgs)),
					zap.Error(err),
				)
			}
		},
	}
	return newProducer(w, buf)
}

func newProducer(w messageWriter, buf int) *Producer {
	return &Producer{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// Start runs the delivery loop until ctx is cancelled or Close is called.
// Messages still queued at that point are flushed before the writer closes.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-ctx.Done():
				p.Close()
				p.flush()
				return
			case m, ok := <-p.inbox:
				if !ok {
					p.flush()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) Publish(ctx context.Context, env Envelope) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "events"),
		zap.String("event_type", env.EventType),
		zap.String("event_id", env.EventID),
	)

	msg := kafka.Message{
		Key:   []byte(env.CorrelationID),
		Value: MustMarshal(env),
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(env.EventType)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(env.EventVersion))},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		log.Warn("producer closed, event dropped")
		return
	}

	select {
	case p.inbox <- msg:
		log.Debug("event queued")
	default:
		log.Warn("producer inbox full, event dropped")
	}
}

// Close stops accepting events. It is safe to call more than once.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

// WaitClosed blocks until the delivery loop has flushed and exited.
func (p *Producer) WaitClosed() {
	<-p.done
}

func (p *Producer) flush() {
	for m := range p.inbox {
		p.write(m)
	}
	if err := p.w.Close(); err != nil {
		logger.L().Error("failed to close kafka writer", zap.Error(err))
	}
}

func (p *Producer) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.w.WriteMessages(ctx, m); err != nil {
		logger.L().Error("kafka write failed",
			zap.ByteString("key", m.Key),
			zap.Error(err),
		)
	}
}
