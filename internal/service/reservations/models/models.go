package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	ID      string
	Actor   string
	AsAdmin bool // подтверждённая сервером роль администратора
}

// ListRequest запрос на получение списка бронирований
type ListRequest struct {
	Actor            string  // текущий пользователь
	Requester        *string // фильтр по автору, по умолчанию - сам пользователь
	Date             *string // YYYY-MM-DD
	ResourceID       *string
	AsAdmin          bool // администратор видит бронирования всех пользователей
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр.
// Без прав администратора фильтр по автору всегда равен текущему пользователю.
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		ResourceID:       r.ResourceID,
		IncludeCancelled: r.IncludeCancelled,
	}

	switch {
	case !r.AsAdmin:
		filter.Requester = ptr.Ptr(r.Actor)
	case r.Requester != nil && *r.Requester != "":
		filter.Requester = r.Requester
	}

	if r.Date != nil && *r.Date != "" {
		date, err := types.NewDateStringFromString(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}

// Response модели

// ReservationResponse бронирование
type ReservationResponse struct {
	ID          string
	Requester   string
	ResourceID  string
	Date        types.DateString
	Start       types.TimeString
	End         types.TimeString
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          r.ID,
		Requester:   r.Requester,
		ResourceID:  r.ResourceID,
		Date:        r.Date,
		Start:       r.Start,
		End:         r.End,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CancelledAt: r.CancelledAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(items []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(items))}
	for _, r := range items {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}
