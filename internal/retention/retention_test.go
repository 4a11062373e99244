package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingPurger struct{}

func (failingPurger) PurgeCancelledBefore(context.Context, time.Time) (int64, error) {
	return 0, errors.New("disk full")
}

func TestNewJob_InvalidSchedule(t *testing.T) {
	_, err := NewJob(memory.NewRepository(), "every day", 24*time.Hour, logger.Discard())
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = NewJob(memory.NewRepository(), "0 3 * * *", 0, logger.Discard())
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRunOnce(t *testing.T) {
	now := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	repo := memory.NewRepository()
	ctx := context.Background()

	for _, id := range []string{"old", "recent", "active"} {
		_, err := repo.Create(ctx, &domain.Reservation{
			ID: id, Requester: "alice", ResourceID: "cam1",
			Date: "2024-01-10", Start: "10:00", End: "11:00",
			Status: domain.StatusActive, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Cancel(ctx, "old", now.AddDate(0, 0, -100)))
	require.NoError(t, repo.Cancel(ctx, "recent", now.AddDate(0, 0, -10)))

	job, err := NewJob(repo, "0 3 * * *", 90*24*time.Hour, logger.Discard())
	require.NoError(t, err)
	job.WithTimeProvider(fixedClock{now: now})

	removed, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, "old")
	assert.Error(t, err)
	_, err = repo.GetByID(ctx, "recent")
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, "active")
	assert.NoError(t, err)
}

func TestRunOnce_Error(t *testing.T) {
	job, err := NewJob(failingPurger{}, "@daily", time.Hour, logger.Discard())
	require.NoError(t, err)

	_, err = job.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrPurge)
}

func TestStartStop(t *testing.T) {
	job, err := NewJob(memory.NewRepository(), "0 3 * * *", time.Hour, logger.Discard())
	require.NoError(t, err)

	require.NoError(t, job.Start())
	require.NoError(t, job.Start())
	job.Stop()
	job.Stop()
}
