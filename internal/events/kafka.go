package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	mirrorQueueSize    = 256
	mirrorWriteTimeout = 5 * time.Second
)

// ErrMirrorQueueFull is returned when the broker cannot keep up and an event is dropped.
var ErrMirrorQueueFull = errors.New("kafka mirror queue full")

// MessageWriter is the subset of *kafka.Writer used by the mirror.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaMirror forwards every dispatched event to a Kafka topic. Events are queued and
// written from a background goroutine, never on the publishing request.
type KafkaMirror struct {
	writer MessageWriter
	logger *zap.Logger
	queue  chan kafka.Message
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewKafkaWriter builds a writer for the configured brokers and topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: mirrorWriteTimeout,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaMirror wraps writer and starts the delivery loop. Close stops it.
func NewKafkaMirror(writer MessageWriter, logger *zap.Logger) *KafkaMirror {
	return newKafkaMirror(writer, logger, mirrorQueueSize)
}

func newKafkaMirror(writer MessageWriter, logger *zap.Logger, size int) *KafkaMirror {
	k := &KafkaMirror{
		writer: writer,
		logger: logger,
		queue:  make(chan kafka.Message, size),
		done:   make(chan struct{}),
	}
	go k.run()
	return k
}

// Register subscribes the mirror to all events on dispatcher.
func (k *KafkaMirror) Register(dispatcher Dispatcher) {
	dispatcher.SubscribeAll(k.Handle)
}

// Handle encodes event keyed by aggregate id, so events of one aggregate land on the
// same partition, and queues it. It never blocks on the broker.
func (k *KafkaMirror) Handle(_ context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.Timestamp,
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return errors.New("kafka mirror closed")
	}
	select {
	case k.queue <- msg:
		return nil
	default:
		k.logger.Warn("kafka mirror backlogged, dropping event", zap.String("event_type", string(event.Type)))
		return ErrMirrorQueueFull
	}
}

func (k *KafkaMirror) run() {
	defer close(k.done)
	for msg := range k.queue {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorWriteTimeout)
		if err := k.writer.WriteMessages(ctx, msg); err != nil {
			k.logger.Warn("kafka mirror write failed", zap.ByteString("key", msg.Key), zap.Error(err))
		}
		cancel()
	}
}

// Close drains queued events and closes the writer.
func (k *KafkaMirror) Close() error {
	if k == nil || k.writer == nil {
		return nil
	}
	k.mu.Lock()
	if !k.closed {
		k.closed = true
		close(k.queue)
	}
	k.mu.Unlock()
	<-k.done
	return k.writer.Close()
}
