package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// ErrPublisherClosed indica publicação após Close
var ErrPublisherClosed = errors.New("publicador de eventos encerrado")

// ErrBufferFull indica que a fila interna está cheia
var ErrBufferFull = errors.New("fila de eventos cheia")

// messageWriter é a parte de *kafka.Writer usada pelo publicador
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher entrega eventos a um tópico kafka a partir de uma goroutine.
// Publish nunca bloqueia a requisição: mensagens vão para uma fila com buffer.
type KafkaPublisher struct {
	w        messageWriter
	producer string
	log      logger.Logger

	mu     sync.RWMutex
	closed bool
	inbox  chan kafka.Message
	done   chan struct{}
}

// NewKafkaWriter cria o writer do tópico
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewKafkaPublisher cria o publicador e inicia a goroutine de envio
func NewKafkaPublisher(w messageWriter, producer string, buf int, log logger.Logger) *KafkaPublisher {
	if buf <= 0 {
		buf = 256
	}
	p := &KafkaPublisher{
		w:        w,
		producer: producer,
		log:      log,
		inbox:    make(chan kafka.Message, buf),
		done:     make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *KafkaPublisher) loop() {
	defer close(p.done)
	for m := range p.inbox {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := p.w.WriteMessages(ctx, m); err != nil {
			p.log.Error("falha ao enviar evento ao kafka", "chave", string(m.Key), "erro", err)
		}
		cancel()
	}
}

// Publish implementa usecase.EventPublisher
func (p *KafkaPublisher) Publish(_ context.Context, ev usecase.Event) error {
	env, err := NewEnvelope(p.producer, ev)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.Key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
			{Key: "event_id", Value: []byte(env.EventID)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close esvazia a fila, espera os envios pendentes e fecha o writer
func (p *KafkaPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.w.Close()
}
