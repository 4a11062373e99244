package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var testNow = time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)

func item(id, requester, resource string, date types.DateString, start, end types.TimeString) *domain.Reservation {
	return &domain.Reservation{
		ID: id, Requester: requester, ResourceID: resource, Date: date,
		Start: start, End: end, Status: domain.StatusActive, CreatedAt: testNow, UpdatedAt: testNow,
	}
}

func TestRepository_Lifecycle(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, item("r1", "Alice", "cam1", "2024-05-01", "09:00", "10:00"))
	require.NoError(t, err)

	err = repo.Update(ctx, "r1", domain.ReservationFields{ResourceID: "cam1", Date: "2024-05-01", Start: "11:00", End: "12:00"}, testNow)
	require.NoError(t, err)

	active, err := repo.GetActiveByResourceAndDate(ctx, "cam1", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, types.TimeString("11:00"), active[0].Start)

	require.NoError(t, repo.Cancel(ctx, "r1", testNow))
	assert.ErrorIs(t, repo.Cancel(ctx, "r1", testNow), reservation.ErrReservationNotFound)

	active, err = repo.GetActiveByResourceAndDate(ctx, "cam1", "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, active)

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)

	require.NoError(t, repo.Delete(ctx, "r1"))
	_, err = repo.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, item("r1", "alice", "cam1", "2024-05-01", "09:00", "10:00"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	got.Start = "15:00"

	again, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), again.Start)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, r := range []*domain.Reservation{
		item("r1", "Alice", "cam1", "2024-05-02", "09:00", "10:00"),
		item("r2", "alice", "mic1", "2024-05-01", "15:00", "16:00"),
		item("r3", "bob", "cam1", "2024-05-01", "08:00", "09:00"),
	} {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	own, err := repo.List(ctx, domain.ReservationFilter{Requester: ptr.Ptr("ALICE"), Date: ptr.Ptr(types.DateString("2024-05-02"))})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "r1", own[0].ID)
}

func TestRepository_PurgeCancelledBefore(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, item("r1", "alice", "cam1", "2024-01-01", "09:00", "10:00"))
	require.NoError(t, err)
	require.NoError(t, repo.Cancel(ctx, "r1", testNow.AddDate(0, 0, -100)))

	removed, err := repo.PurgeCancelledBefore(ctx, testNow.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
