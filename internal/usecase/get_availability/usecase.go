package get_availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase получение свободных интервалов ресурса на дату
type UseCase struct {
	reservationRepo ReservationRepository
	policy          PolicyEngine
	catalog         ResourceCatalog
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(
	reservationRepo ReservationRepository,
	policy PolicyEngine,
	catalog ResourceCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policy:          policy,
		catalog:         catalog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает свободные окна внутри часов работы.
// Чтение без блокировок: результат может устареть к моменту бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: resource=%s, date=%s", req.ResourceID, req.Date)

	// 1. Валидация
	date, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}
	resourceID := strings.TrimSpace(req.ResourceID)

	// 2. Активные бронирования ресурса на дату
	reservations, err := uc.reservationRepo.GetActiveByResourceAndDate(ctx, resourceID, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for %s on %s: %v", resourceID, date, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	busy := make([]domain.Interval, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		busy = append(busy, domain.Interval{Start: r.Start, End: r.End})
	}

	// 3. Свободные окна и признак доступности
	now := uc.timeProvider.Now()
	free := uc.policy.FreeIntervals(busy)

	intervals := make([]Interval, 0, len(free))
	for _, f := range free {
		item := domain.FreeInterval{
			Interval: f,
			Bookable: !uc.policy.IsStartLocked(date, f.End, now),
		}
		intervals = append(intervals, Interval{
			Start:           item.Start,
			End:             item.End,
			DurationMinutes: item.DurationMinutes(),
			Bookable:        item.Bookable,
		})
	}

	uc.logger.Info("GetAvailability: %d busy, %d free intervals for %s on %s", len(busy), len(intervals), resourceID, date)

	return &Response{
		ResourceID: resourceID,
		Date:       date,
		Intervals:  intervals,
	}, nil
}
