package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetActiveByResourceAndDate получает активные бронирования ресурса на дату
	GetActiveByResourceAndDate(ctx context.Context, resourceID string, date types.DateString) ([]*domain.Reservation, error)
}

// PolicyEngine часы работы и окно блокировки
type PolicyEngine interface {
	FreeIntervals(busy []domain.Interval) []domain.Interval
	IsStartLocked(date types.DateString, start types.TimeString, now time.Time) bool
}

// ResourceCatalog справочник ресурсов
type ResourceCatalog interface {
	Contains(id string) bool
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
