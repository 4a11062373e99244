package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newKafkaPublisher(writer, logger.Discard())

	r := &domain.Reservation{ID: "r1", Requester: "alice", ResourceID: "cam1", Date: "2024-05-01", Start: "09:00", End: "10:00", Status: domain.StatusActive}
	at := time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, p.Publish(context.Background(), TypeReservationCreated, "alice", r, at))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte("cam1"), msg.Key)

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, TypeReservationCreated, event.Type)
	assert.Equal(t, "alice", event.Actor)
	assert.Equal(t, "r1", event.Reservation.ID)
	assert.Equal(t, "09:00", event.Reservation.Start)
	assert.NotEmpty(t, event.ID)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "reservation.created", headers[HeaderEventType])
	assert.Equal(t, event.ID, headers[HeaderEventID])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{err: errors.New("broker down")}, logger.Discard())

	err := p.Publish(context.Background(), TypeReservationCancelled, "admin", &domain.Reservation{ID: "r1", ResourceID: "cam1"}, time.Now())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewKafkaPublisher_InvalidConfig(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "reservations", logger.Discard())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "", logger.Discard())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
