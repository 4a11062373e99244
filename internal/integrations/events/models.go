package events

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Type тип события жизненного цикла бронирования
type Type string

const (
	TypeReservationCreated   Type = "reservation.created"
	TypeReservationUpdated   Type = "reservation.updated"
	TypeReservationCancelled Type = "reservation.cancelled"
)

// Header keys
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

const source = "reservation-service"

// Event событие, публикуемое после фиксации изменения
type Event struct {
	ID          string      `json:"id"`
	Type        Type        `json:"type"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Actor       string      `json:"actor"`
	Reservation Reservation `json:"reservation"`
}

// Reservation снимок бронирования в событии
type Reservation struct {
	ID         string `json:"id"`
	Requester  string `json:"requester"`
	ResourceID string `json:"resource_id"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
}

// NewReservationSnapshot копирует поля бронирования в модель события
func NewReservationSnapshot(r *domain.Reservation) Reservation {
	return Reservation{
		ID:         r.ID,
		Requester:  r.Requester,
		ResourceID: r.ResourceID,
		Date:       r.Date.String(),
		Start:      r.Start.String(),
		End:        r.End.String(),
		Status:     string(r.Status),
	}
}
