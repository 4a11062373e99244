package update_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetActiveByResourceAndDate(ctx context.Context, resourceID string, date types.DateString) ([]*domain.Reservation, error)
	Update(ctx context.Context, id string, fields domain.ReservationFields, updatedAt time.Time) error
}

// PolicyEngine правила допустимости окна и блокировки изменений
type PolicyEngine interface {
	IsWithinOpeningHours(start, end types.TimeString) bool
	IsLocked(r *domain.Reservation, now time.Time) bool
	IsStartLocked(date types.DateString, start types.TimeString, now time.Time) bool
}

// ResourceCatalog каталог ресурсов
type ResourceCatalog interface {
	Contains(id string) bool
}

// PartitionLocker блокировка партиции (ресурс, дата) внутри процесса
type PartitionLocker interface {
	Lock(key string) (unlock func())
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
