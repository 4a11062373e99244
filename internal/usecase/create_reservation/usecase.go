package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/internal/policy"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

const operationName = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	policy          PolicyEngine
	catalog         ResourceCatalog
	validator       Validator
	locker          PartitionLocker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
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

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются под блокировкой партиции
// (ресурс, дата) в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)
	uc.logger.Info("CreateReservation: requester=%s, resource=%s, date=%s, time=%s-%s",
		req.Requester, req.ResourceID, req.Date, req.Start, req.End)

	result, err := uc.execute(ctx, req)
	uc.metrics.ObserveReservation(operationName, outcome(err))
	if err != nil {
		return nil, err
	}

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время читается один раз на запрос
	now := uc.timeProvider.Now()

	candidate := &domain.Reservation{
		ID:         uuid.NewString(),
		Requester:  req.Requester,
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Start:      req.Start,
		End:        req.End,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// 3. Проверка пересечений и вставка под блокировкой партиции
	if err := uc.insert(ctx, candidate); err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s", candidate.ID)

	// 4. Событие публикуется после фиксации и снятия блокировки, ошибка публикации не отменяет бронирование
	if err := uc.publisher.Publish(ctx, events.TypeReservationCreated, candidate.Requester, candidate, now); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for id=%s: %v", candidate.ID, err)
	}

	return candidate, nil
}

// insert держит блокировку партиции (ресурс, дата) только на время транзакции
func (uc *UseCase) insert(ctx context.Context, candidate *domain.Reservation) error {
	unlock := uc.locker.Lock(candidate.PartitionKey())
	defer unlock()

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.GetActiveByResourceAndDate(txCtx, candidate.ResourceID, candidate.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		if conflict := policy.FindConflict(candidate, existing); conflict != nil {
			uc.logger.Warn("CreateReservation: overlaps reservation id=%s (%s-%s)", conflict.ID, conflict.Start, conflict.End)
			return ErrConflict
		}

		if _, err := uc.reservationRepo.Create(txCtx, candidate); err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				uc.logger.Warn("CreateReservation: rejected by storage overlap constraint")
				return ErrConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrInternal) {
			return err
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownResource), errors.Is(err, ErrOutsideOpeningHours):
		return metrics.OutcomeValidation
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
