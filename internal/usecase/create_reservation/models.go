package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Requester  string           `validate:"required,max=255"`
	ResourceID string           `validate:"required,max=64"`
	Date       types.DateString `validate:"required,reservation_date"`
	Start      types.TimeString `validate:"required,clock_time"`
	End        types.TimeString `validate:"required,clock_time"`
}

// Response модель ответа с созданным бронированием
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
