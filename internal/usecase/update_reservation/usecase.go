package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/internal/policy"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

const operationName = "update"

// UseCase use case для переноса бронирования
type UseCase struct {
	reservationRepo      ReservationRepository
	policy               PolicyEngine
	catalog              ResourceCatalog
	validator            Validator
	locker               PartitionLocker
	txManager            TransactionManager
	publisher            EventPublisher
	metrics              MetricsRecorder
	timeProvider         TimeProvider
	logger               Logger
	lockRescheduledStart bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	policy PolicyEngine,
	catalog ResourceCatalog,
	validator Validator,
	locker PartitionLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policy:          policy,
		catalog:         catalog,
		validator:       validator,
		locker:          locker,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithLockRescheduledStart включает проверку блокировки и для нового времени начала
func (uc *UseCase) WithLockRescheduledStart(enabled bool) *UseCase {
	uc.lockRescheduledStart = enabled
	return uc
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)
	uc.logger.Info("UpdateReservation: id=%s, actor=%s, admin=%t, resource=%s, date=%s, time=%s-%s",
		req.ID, req.Actor, req.AsAdmin, req.ResourceID, req.Date, req.Start, req.End)

	result, err := uc.execute(ctx, req)
	uc.metrics.ObserveReservation(operationName, outcome(err))
	if err != nil {
		return nil, err
	}

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	// 1. Текущее время читается один раз на запрос
	now := uc.timeProvider.Now()

	// 2. Существующее бронирование, владелец и блокировка по сохранённому началу
	existing, err := uc.getActive(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAccess(existing, req, now); err != nil {
		uc.logger.Warn("UpdateReservation: access check failed for id=%s: %v", req.ID, err)
		return nil, err
	}

	// 3. Валидация новых значений
	if err := uc.validateRequest(req, now); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	candidate := req.fields().Apply(*existing)
	candidate.UpdatedAt = now

	// 4. Повторная проверка, поиск пересечений и обновление под блокировкой целевой партиции
	if err := uc.apply(ctx, req, &candidate, now); err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%s", req.ID)

	// 5. Событие публикуется после снятия блокировки
	if err := uc.publisher.Publish(ctx, events.TypeReservationUpdated, req.Actor, &candidate, now); err != nil {
		uc.logger.Warn("UpdateReservation: failed to publish event for id=%s: %v", req.ID, err)
	}

	return &candidate, nil
}

// apply блокирует только целевую партицию: освобождение старого слота пересечений не создаёт.
// Блокировка держится лишь на время транзакции.
func (uc *UseCase) apply(ctx context.Context, req *Request, candidate *domain.Reservation, now time.Time) error {
	unlock := uc.locker.Lock(candidate.PartitionKey())
	defer unlock()

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		fresh, err := uc.getActive(txCtx, req.ID)
		if err != nil {
			return err
		}
		if err := uc.checkAccess(fresh, req, now); err != nil {
			uc.logger.Warn("UpdateReservation: access re-check failed for id=%s: %v", req.ID, err)
			return err
		}

		existingInPartition, err := uc.reservationRepo.GetActiveByResourceAndDate(txCtx, candidate.ResourceID, candidate.Date)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		if conflict := policy.FindConflict(candidate, existingInPartition); conflict != nil {
			uc.logger.Warn("UpdateReservation: overlaps reservation id=%s (%s-%s)", conflict.ID, conflict.Start, conflict.End)
			return ErrConflict
		}

		if err := uc.reservationRepo.Update(txCtx, req.ID, req.fields(), now); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrOverlap):
				return ErrConflict
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%s: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		candidate.CreatedAt = fresh.CreatedAt
		return nil
	})
	if err != nil {
		if isBusinessError(err) || errors.Is(err, ErrInternal) {
			return err
		}
		uc.logger.Error("UpdateReservation: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	return nil
}

// getActive возвращает активное бронирование, отменённые считаются отсутствующими
func (uc *UseCase) getActive(ctx context.Context, id string) (*domain.Reservation, error) {
	existing, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%s not found", id)
			return nil, ErrNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
	}
	if !existing.IsActive() {
		uc.logger.Warn("UpdateReservation: reservation id=%s is %s", id, existing.Status)
		return nil, ErrNotFound
	}
	return existing, nil
}

func isBusinessError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrForbidden, ErrLocked, ErrConflict} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownResource), errors.Is(err, ErrOutsideOpeningHours):
		return metrics.OutcomeValidation
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrLocked):
		return metrics.OutcomeLocked
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomeError
	}
}
