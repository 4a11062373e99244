// Package retention periodically purges cancelled reservations older than a configured age.
package retention

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrInvalidSchedule cron выражение не разбирается
	ErrInvalidSchedule = errors.New("retention: invalid schedule")

	// ErrPurge ошибка удаления устаревших бронирований
	ErrPurge = errors.New("retention: purge failed")
)

// Purger удаляет отменённые бронирования, отменённые раньше before
type Purger interface {
	PurgeCancelledBefore(ctx context.Context, before time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Job очистка отменённых бронирований по расписанию
type Job struct {
	cron         *cron.Cron
	purger       Purger
	maxAge       time.Duration
	schedule     string
	timeout      time.Duration
	timeProvider TimeProvider
	logger       Logger

	mu      sync.Mutex
	started bool
}

// NewJob создает задачу очистки. schedule - стандартное cron выражение из пяти полей.
func NewJob(purger Purger, schedule string, maxAge time.Duration, logger Logger) (*Job, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("%w: max age must be positive", ErrInvalidSchedule)
	}

	return &Job{
		cron:         cron.New(),
		purger:       purger,
		maxAge:       maxAge,
		schedule:     schedule,
		timeout:      time.Minute,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}, nil
}

// WithTimeProvider подменяет источник времени
func (j *Job) WithTimeProvider(tp TimeProvider) *Job {
	j.timeProvider = tp
	return j
}

// RunOnce удаляет отменённые бронирования старше maxAge
func (j *Job) RunOnce(ctx context.Context) (int64, error) {
	before := j.timeProvider.Now().Add(-j.maxAge)

	removed, err := j.purger.PurgeCancelledBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPurge, err)
	}

	return removed, nil
}

// Start регистрирует задачу и запускает планировщик
func (j *Job) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.started {
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	j.cron.Start()
	j.started = true
	j.logger.Info("Retention job scheduled: %q, max age %s", j.schedule, j.maxAge)
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенной очистки
func (j *Job) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.started {
		return
	}

	<-j.cron.Stop().Done()
	j.started = false
	j.logger.Info("Retention job stopped")
}

func (j *Job) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	removed, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.Error("Retention: %v", err)
		return
	}
	j.logger.Info("Retention: purged %d cancelled reservations", removed)
}
