package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id string, cancelledAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// PolicyEngine правило блокировки изменений
type PolicyEngine interface {
	IsLocked(r *domain.Reservation, now time.Time) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после фиксации
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.Type, actor string, r *domain.Reservation, at time.Time) error
}

// MetricsRecorder учёт результатов операций
type MetricsRecorder interface {
	ObserveReservation(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
