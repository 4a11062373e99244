package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/internal/policy"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingRepository struct{}

func (failingRepository) GetActiveByResourceAndDate(context.Context, string, types.DateString) ([]*domain.Reservation, error) {
	return nil, errors.New("connection refused")
}

// 2024-05-01 09:30 UTC
var testNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newUseCase(t *testing.T, repo ReservationRepository) *UseCase {
	t.Helper()

	engine, err := policy.NewEngine(policy.Config{
		OpeningStart:         "08:00",
		OpeningEnd:           "18:00",
		LockThresholdMinutes: 60,
		Location:             time.UTC,
	})
	require.NoError(t, err)

	catalog := domain.NewCatalog([]domain.Resource{{ID: "cam1"}, {ID: "mic1"}})
	return NewUseCase(repo, engine, catalog, logger.Discard()).WithTimeProvider(fixedClock{now: testNow})
}

func seed(t *testing.T, repo *memory.Repository, id, resourceID, date, start, end string) {
	t.Helper()
	_, err := repo.Create(context.Background(), &domain.Reservation{
		ID:         id,
		Requester:  "alice",
		ResourceID: resourceID,
		Date:       types.DateString(date),
		Start:      types.TimeString(start),
		End:        types.TimeString(end),
		Status:     domain.StatusActive,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	})
	require.NoError(t, err)
}

func TestExecute_FreeIntervals(t *testing.T) {
	repo := memory.NewRepository()
	seed(t, repo, "r1", "cam1", "2024-05-02", "10:00", "11:00")
	seed(t, repo, "r2", "cam1", "2024-05-02", "11:00", "12:30")
	seed(t, repo, "r3", "cam1", "2024-05-02", "17:00", "18:00")
	seed(t, repo, "r4", "mic1", "2024-05-02", "08:00", "18:00")
	seed(t, repo, "r5", "cam1", "2024-05-03", "08:00", "18:00")

	resp, err := newUseCase(t, repo).Execute(context.Background(), &Request{ResourceID: "cam1", Date: "2024-05-02"})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 2)
	assert.Equal(t, Interval{Start: "08:00", End: "10:00", DurationMinutes: 120, Bookable: true}, resp.Intervals[0])
	assert.Equal(t, Interval{Start: "12:30", End: "17:00", DurationMinutes: 270, Bookable: true}, resp.Intervals[1])
}

func TestExecute_EmptyDayIsFullyFree(t *testing.T) {
	resp, err := newUseCase(t, memory.NewRepository()).Execute(context.Background(), &Request{ResourceID: "mic1", Date: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, types.TimeString("08:00"), resp.Intervals[0].Start)
	assert.Equal(t, types.TimeString("18:00"), resp.Intervals[0].End)
}

func TestExecute_BookableRespectsLockWindow(t *testing.T) {
	repo := memory.NewRepository()
	seed(t, repo, "r1", "cam1", "2024-05-01", "10:00", "12:00")

	resp, err := newUseCase(t, repo).Execute(context.Background(), &Request{ResourceID: "cam1", Date: "2024-05-01"})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 2)
	// 08:00-10:00 заканчивается через 30 минут
	assert.False(t, resp.Intervals[0].Bookable)
	assert.True(t, resp.Intervals[1].Bookable)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	repo := memory.NewRepository()
	seed(t, repo, "r1", "cam1", "2024-05-02", "10:00", "11:00")
	require.NoError(t, repo.Cancel(context.Background(), "r1", testNow))

	resp, err := newUseCase(t, repo).Execute(context.Background(), &Request{ResourceID: "cam1", Date: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, resp.Intervals, 1)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(t, memory.NewRepository())

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "empty resource", req: Request{Date: "2024-05-02"}, wantErr: ErrInvalidInput},
		{name: "unknown resource", req: Request{ResourceID: "lap9", Date: "2024-05-02"}, wantErr: ErrUnknownResource},
		{name: "malformed date", req: Request{ResourceID: "cam1", Date: "02-05-2024"}, wantErr: ErrInvalidDate},
		{name: "empty date", req: Request{ResourceID: "cam1"}, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryError(t *testing.T) {
	_, err := newUseCase(t, failingRepository{}).Execute(context.Background(), &Request{ResourceID: "cam1", Date: "2024-05-02"})
	assert.ErrorIs(t, err, ErrInternal)
}
