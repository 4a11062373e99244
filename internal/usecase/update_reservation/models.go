package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Requester и статус не меняются, меняются только ресурс, дата и время.
type Request struct {
	ID         string           `validate:"required"`
	Actor      string           `validate:"required"` // кто выполняет изменение
	AsAdmin    bool             // подтверждённая сервером роль администратора
	ResourceID string           `validate:"required,max=64"`
	Date       types.DateString `validate:"required,reservation_date"`
	Start      types.TimeString `validate:"required,clock_time"`
	End        types.TimeString `validate:"required,clock_time"`
}

func (r *Request) fields() domain.ReservationFields {
	return domain.ReservationFields{
		ResourceID: r.ResourceID,
		Date:       r.Date,
		Start:      r.Start,
		End:        r.End,
	}
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID         string
	Requester  string
	ResourceID string
	Date       types.DateString
	Start      types.TimeString
	End        types.TimeString
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:         r.ID,
		Requester:  r.Requester,
		ResourceID: r.ResourceID,
		Date:       r.Date,
		Start:      r.Start,
		End:        r.End,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
