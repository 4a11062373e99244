package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события бронирований в Kafka.
// Ключ сообщения - ID ресурса, чтобы события одного ресурса попадали в одну партицию.
type KafkaPublisher struct {
	writer messageWriter
	log    Logger
}

// NewKafkaPublisher создает публикатор поверх kafka-go writer
func NewKafkaPublisher(brokers []string, topic string, log Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker is required", ErrInvalidConfig)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrInvalidConfig)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(log.Error),
	}

	return newKafkaPublisher(writer, log), nil
}

func newKafkaPublisher(writer messageWriter, log Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

// Publish отправляет событие о бронировании
func (p *KafkaPublisher) Publish(ctx context.Context, eventType Type, actor string, r *domain.Reservation, at time.Time) error {
	event := Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		OccurredAt:  at.UTC(),
		Actor:       actor,
		Reservation: NewReservationSnapshot(r),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(r.ResourceID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderSource, Value: []byte(source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s id=%s: %v", ErrPublish, eventType, r.ID, err)
	}

	p.log.Info("Published %s for reservation id=%s", eventType, r.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Type, string, *domain.Reservation, time.Time) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
