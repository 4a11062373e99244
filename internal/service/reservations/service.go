package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	policy          PolicyEngine
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
	retainCancelled bool
}

// NewService создает новый экземпляр сервиса бронирований.
// retainCancelled определяет, помечать ли отменённые бронирования или удалять их.
func NewService(
	reservationRepo ReservationRepository,
	policy PolicyEngine,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	retainCancelled bool,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		policy:          policy,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    realTimeProvider{},
		logger:          logger,
		retainCancelled: retainCancelled,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID, включая отменённые.
// Не администратор видит только свои бронирования.
func (s *Service) GetByID(ctx context.Context, id string, actor string, asAdmin bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for actor=%s", id, actor)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !asAdmin && !reservation.IsOwnedBy(actor) {
		s.logger.Warn("GetByID: access denied for actor=%s to reservation id=%s", actor, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// List возвращает бронирования, упорядоченные по дате и времени начала.
// Только чтение, без блокировок.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: actor=%s, admin=%t, includeCancelled=%t", req.Actor, req.AsAdmin, req.IncludeCancelled)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(items))
	return models.FromDomainReservationList(items), nil
}

// Cancel отменяет бронирование.
// Владелец не может отменить бронирование внутри окна блокировки,
// администратор может отменить любое бронирование в любой момент.
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%s by actor=%s, admin=%t", req.ID, req.Actor, req.AsAdmin)

	err := s.cancel(ctx, req)
	s.metrics.ObserveReservation(cancelOperation(req), outcome(err))
	return err
}

func (s *Service) cancel(ctx context.Context, req *models.CancelRequest) error {
	now := s.timeProvider.Now()
	var cancelled *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%s not found", req.ID)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%s: %v", req.ID, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		// Отменённое бронирование повторно не отменяется
		if !reservation.IsActive() {
			s.logger.Warn("Cancel: reservation id=%s is already %s", req.ID, reservation.Status)
			return ErrReservationNotFound
		}

		if !req.AsAdmin {
			if !reservation.IsOwnedBy(req.Actor) {
				s.logger.Warn("Cancel: access denied for actor=%s to reservation id=%s", req.Actor, req.ID)
				return ErrAccessDenied
			}
			if s.policy.IsLocked(reservation, now) {
				s.logger.Warn("Cancel: reservation id=%s starts at %s %s, inside lock window", req.ID, reservation.Date, reservation.Start)
				return ErrLocked
			}
		}

		if s.retainCancelled {
			err = s.reservationRepo.Cancel(txCtx, req.ID, now)
		} else {
			err = s.reservationRepo.Delete(txCtx, req.ID)
		}
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%s: %v", req.ID, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		reservation.Status = domain.StatusCancelled
		reservation.CancelledAt = &now
		cancelled = reservation
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrLocked), errors.Is(err, ErrInternal):
			return err
		}
		s.logger.Error("Cancel: transaction failed: %v", err)
		return fmt.Errorf("%w: Cancel - transaction failed: %w", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", req.ID)

	if err := s.publisher.Publish(ctx, events.TypeReservationCancelled, req.Actor, cancelled, now); err != nil {
		s.logger.Warn("Cancel: failed to publish event for id=%s: %v", req.ID, err)
	}

	return nil
}

func cancelOperation(req *models.CancelRequest) string {
	if req.AsAdmin {
		return "cancel_admin"
	}
	return "cancel"
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrReservationNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrAccessDenied):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrLocked):
		return metrics.OutcomeLocked
	default:
		return metrics.OutcomeError
	}
}
