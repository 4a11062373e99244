// Package memory keeps reservations in process memory.
// It satisfies the same contract as the SQL repository and is used
// for the "memory" database driver and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Repository in-memory хранилище бронирований
type Repository struct {
	mu    sync.RWMutex
	items map[string]domain.Reservation
}

func NewRepository() *Repository {
	return &Repository{items: make(map[string]domain.Reservation)}
}

func (r *Repository) GetActiveByResourceAndDate(_ context.Context, resourceID string, date types.DateString) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, item := range r.items {
		if item.IsActive() && item.ResourceID == resourceID && item.Date == date {
			result = append(result, clone(item))
		}
	}
	sortByDateAndStart(result)
	return result, nil
}

func (r *Repository) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[res.ID] = *clone(*res)
	return res, nil
}

func (r *Repository) Update(_ context.Context, id string, fields domain.ReservationFields, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || !item.IsActive() {
		return reservation.ErrReservationNotFound
	}
	item = fields.Apply(item)
	item.UpdatedAt = updatedAt
	r.items[id] = item
	return nil
}

func (r *Repository) Cancel(_ context.Context, id string, cancelledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || !item.IsActive() {
		return reservation.ErrReservationNotFound
	}
	item.Status = domain.StatusCancelled
	item.CancelledAt = &cancelledAt
	item.UpdatedAt = cancelledAt
	r.items[id] = item
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return reservation.ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return clone(item), nil
}

func (r *Repository) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, item := range r.items {
		if !filter.IncludeCancelled && !item.IsActive() {
			continue
		}
		if filter.Requester != nil && !item.IsOwnedBy(*filter.Requester) {
			continue
		}
		if filter.Date != nil && item.Date != *filter.Date {
			continue
		}
		if filter.ResourceID != nil && item.ResourceID != *filter.ResourceID {
			continue
		}
		result = append(result, clone(item))
	}
	sortByDateAndStart(result)
	return result, nil
}

func (r *Repository) PurgeCancelledBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, item := range r.items {
		if item.Status == domain.StatusCancelled && item.CancelledAt != nil && item.CancelledAt.Before(before) {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}

func clone(item domain.Reservation) *domain.Reservation {
	if item.CancelledAt != nil {
		t := *item.CancelledAt
		item.CancelledAt = &t
	}
	return &item
}

func sortByDateAndStart(items []*domain.Reservation) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		if items[i].Start != items[j].Start {
			return items[i].Start.IsBefore(items[j].Start)
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
