package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "ACTIVE"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a time-boxed claim on a resource for a calendar date
type Reservation struct {
	ID         string
	Requester  string
	ResourceID string
	Date       types.DateString
	Start      types.TimeString
	End        types.TimeString
	Status     ReservationStatus

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

// IsActive returns true if the reservation still holds its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// IsOwnedBy reports whether requester booked the reservation, ignoring case
func (r *Reservation) IsOwnedBy(requester string) bool {
	return NormalizeRequester(r.Requester) == NormalizeRequester(requester)
}

// PartitionKey identifies the (resource, date) bucket in which overlaps are checked
func (r *Reservation) PartitionKey() string {
	return PartitionKey(r.ResourceID, r.Date)
}

// PartitionKey builds the key of a (resource, date) bucket
func PartitionKey(resourceID string, date types.DateString) string {
	return resourceID + "|" + date.String()
}

// NormalizeRequester is the canonical form used for requester matching
func NormalizeRequester(requester string) string {
	return strings.ToLower(strings.TrimSpace(requester))
}

// ReservationFields are the mutable parts of a reservation
type ReservationFields struct {
	ResourceID string
	Date       types.DateString
	Start      types.TimeString
	End        types.TimeString
}

// Apply returns a copy of r with the fields replaced
func (f ReservationFields) Apply(r Reservation) Reservation {
	r.ResourceID = f.ResourceID
	r.Date = f.Date
	r.Start = f.Start
	r.End = f.End
	return r
}

// ReservationFilter фильтр для получения списка бронирований
type ReservationFilter struct {
	Requester        *string           // Без учёта регистра, nil - все пользователи
	Date             *types.DateString // Точная дата, nil - все даты
	ResourceID       *string
	IncludeCancelled bool
}
