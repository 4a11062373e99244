package update_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Validator проверка struct-тегов запроса
type Validator interface {
	Validate(s interface{}) error
}

func normalizeRequest(req *Request) {
	req.ID = strings.TrimSpace(req.ID)
	req.Actor = strings.TrimSpace(req.Actor)
	req.ResourceID = strings.TrimSpace(req.ResourceID)
}

// checkAccess проверяет владельца и блокировку по текущему (ещё не изменённому) началу.
// Администратор может изменять чужие бронирования, но блокировка действует и для него.
func (uc *UseCase) checkAccess(existing *domain.Reservation, req *Request, now time.Time) error {
	if !req.AsAdmin && !existing.IsOwnedBy(req.Actor) {
		return ErrForbidden
	}
	if uc.policy.IsLocked(existing, now) {
		return fmt.Errorf("%w: starts at %s %s", ErrLocked, existing.Date, existing.Start)
	}
	return nil
}

// validateRequest проверяет новые значения полей
func (uc *UseCase) validateRequest(req *Request, now time.Time) error {
	if err := uc.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !uc.catalog.Contains(req.ResourceID) {
		return fmt.Errorf("%w: %s", ErrUnknownResource, req.ResourceID)
	}

	if !uc.policy.IsWithinOpeningHours(req.Start, req.End) {
		return fmt.Errorf("%w: %s-%s", ErrOutsideOpeningHours, req.Start, req.End)
	}

	// Перенос на время внутри окна блокировки запрещается только по настройке
	if uc.lockRescheduledStart && uc.policy.IsStartLocked(req.Date, req.Start, now) {
		return fmt.Errorf("%w: new start %s %s is inside the lock window", ErrLocked, req.Date, req.Start)
	}

	return nil
}
