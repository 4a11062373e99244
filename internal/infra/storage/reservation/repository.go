package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	tableName = "reservations"

	// exclusion_violation, см. reservations_no_overlap
	pqExclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"requester",
	"resource_id",
	"reservation_date",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
	"cancelled_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL или SQLite
type Repository struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
	dialect string
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect string) (*Repository, error) {
	builder, err := sqlbuilder.New(dialect)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, builder: builder, dialect: dialect}, nil
}

// GetActiveByResourceAndDate возвращает активные бронирования ресурса на дату.
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE),
// чтобы параллельная проверка пересечений дождалась фиксации.
func (r *Repository) GetActiveByResourceAndDate(ctx context.Context, resourceID string, date types.DateString) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{
			"resource_id":      resourceID,
			"reservation_date": date,
			"status":           domain.StatusActive,
		}).
		OrderBy("start_time")

	if r.dialect == sqlbuilder.DialectPostgres && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByResourceAndDate - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Create сохраняет новое бронирование.
// ID и временные метки заполняет вызывающий код.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Insert(tableName).
		Columns(columns...).
		Values(
			reservation.ID,
			reservation.Requester,
			reservation.ResourceID,
			reservation.Date,
			reservation.Start,
			reservation.End,
			reservation.Status,
			reservation.CreatedAt.UTC(),
			reservation.UpdatedAt.UTC(),
			utcPtr(reservation.CancelledAt),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// Update переносит активное бронирование на новый ресурс, дату или время
func (r *Repository) Update(ctx context.Context, id string, fields domain.ReservationFields, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Update(tableName).
		Set("resource_id", fields.ResourceID).
		Set("reservation_date", fields.Date).
		Set("start_time", fields.Start).
		Set("end_time", fields.End).
		Set("updated_at", updatedAt.UTC()).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrOverlap
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// Cancel помечает активное бронирование отменённым
func (r *Repository) Cancel(ctx context.Context, id string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt.UTC()).
		Set("updated_at", cancelledAt.UTC()).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

// Delete физически удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// GetByID получает бронирование по ID, включая отменённые
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// List возвращает бронирования по фильтру, упорядоченные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(columns...).
		From(tableName).
		OrderBy("reservation_date", "start_time", "created_at")

	if filter.Requester != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("LOWER(requester) = ?", domain.NormalizeRequester(*filter.Requester)))
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}
	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// PurgeCancelledBefore удаляет отменённые бронирования старше указанного момента
func (r *Repository) PurgeCancelledBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Delete(tableName).
		Where(squirrel.Eq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"cancelled_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeCancelledBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeCancelledBefore - execute delete: %w", ErrExecQuery, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeCancelledBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return removed, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// utcPtr временные метки храним в UTC, иначе строковое сравнение в SQLite некорректно
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.Requester,
		&reservation.ResourceID,
		&reservation.Date,
		&reservation.Start,
		&reservation.End,
		&reservation.Status,
		&createdAt,
		&updatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time
	if cancelledAt.Valid {
		t := cancelledAt.Time
		reservation.CancelledAt = &t
	}

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
