package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "provider_availability"

var columns = []string{
	"id",
	"provider_id",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"timezone",
	"slot_duration",
	"break_duration",
	"recurrence_pattern",
	"is_active",
	"appointment_type",
	"location_type",
	"specialization",
	"price",
	"requirements",
	"created_at",
	"updated_at",
}

// Repository репозиторий окон доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет окно доступности
// ID генерируется, если не задан. Если в контексте есть транзакция, запрос
// выполняется в ней: окно и его слоты пишутся атомарно.
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"provider_id",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"timezone",
			"slot_duration",
			"break_duration",
			"recurrence_pattern",
			"is_active",
			"appointment_type",
			"location_type",
			"specialization",
			"price",
			"requirements",
		).
		Values(
			w.ID,
			w.ProviderID,
			w.StartDate.Format(domain.DateFormat),
			w.EndDate.Format(domain.DateFormat),
			w.StartTime,
			w.EndTime,
			w.Timezone,
			w.SlotDurationMinutes,
			w.BreakDurationMinutes,
			w.RecurrencePattern,
			w.IsActive,
			w.AppointmentType,
			w.LocationType,
			w.Specialization,
			w.Price,
			w.Requirements,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return w, nil
}

// GetByID получает окно по ID (в любом состоянии)
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan availability: %w", ErrScanRow, err)
	}

	return w, nil
}

// GetActiveByProvider получает все активные окна провайдера
func (r *Repository) GetActiveByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.AvailabilityWindow, error) {
	query, args, err := activeByProviderQuery(providerID, nil, nil).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProvider - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetActiveByProvider", query, args)
}

// GetActiveByProviderInDateRange получает активные окна провайдера,
// диапазон дат которых пересекается с [from, to]
func (r *Repository) GetActiveByProviderInDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.AvailabilityWindow, error) {
	query, args, err := activeByProviderQuery(providerID, &from, &to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderInDateRange - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetActiveByProviderInDateRange", query, args)
}

// Update перезаписывает все изменяемые поля окна
func (r *Repository) Update(ctx context.Context, w *domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_date", w.StartDate.Format(domain.DateFormat)).
		Set("end_date", w.EndDate.Format(domain.DateFormat)).
		Set("start_time", w.StartTime).
		Set("end_time", w.EndTime).
		Set("timezone", w.Timezone).
		Set("slot_duration", w.SlotDurationMinutes).
		Set("break_duration", w.BreakDurationMinutes).
		Set("recurrence_pattern", w.RecurrencePattern).
		Set("appointment_type", w.AppointmentType).
		Set("location_type", w.LocationType).
		Set("specialization", w.Specialization).
		Set("price", w.Price).
		Set("requirements", w.Requirements).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": w.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAvailabilityNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// SetActive меняет флаг активности окна
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %w", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - rows affected: %w", ErrExecQuery, err)
	}
	if rows == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// activeByProviderQuery строит выборку активных окон провайдера
// Если from и to заданы, остаются окна с start_date <= to и end_date >= from
func activeByProviderQuery(providerID uuid.UUID, from, to *time.Time) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"provider_id": providerID, "is_active": true}).
		OrderBy("start_date ASC", "start_time ASC")

	if from != nil && to != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.LtOrEq{"start_date": to.Format(domain.DateFormat)}).
			Where(squirrel.GtOrEq{"end_date": from.Format(domain.DateFormat)})
	}

	return selectBuilder
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan availability: %w", ErrScanRow, op, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return windows, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row scanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&w.ID,
		&w.ProviderID,
		&w.StartDate,
		&w.EndDate,
		&w.StartTime,
		&w.EndTime,
		&w.Timezone,
		&w.SlotDurationMinutes,
		&w.BreakDurationMinutes,
		&w.RecurrencePattern,
		&w.IsActive,
		&w.AppointmentType,
		&w.LocationType,
		&w.Specialization,
		&w.Price,
		&w.Requirements,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}
