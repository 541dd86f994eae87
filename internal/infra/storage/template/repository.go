package template

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "availability_templates"

// Repository репозиторий шаблонов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет шаблон как есть
func (r *Repository) Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildInsertQuery(t).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByProvider получает все шаблоны провайдера, отсортированные по имени
func (r *Repository) GetByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildByProviderQuery(providerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.AvailabilityTemplate, 0)
	for rows.Next() {
		var t domain.AvailabilityTemplate
		var days []string
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.ProviderID,
			&t.Name,
			pq.Array(&days),
			&t.StartTime,
			&t.EndTime,
			&t.SlotDurationMinutes,
			&t.BreakDurationMinutes,
			&t.Timezone,
			&t.RecurrencePattern,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProvider - scan template: %w", ErrScanRow, err)
		}

		t.DaysOfWeek = fromStrings(days)
		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		templates = append(templates, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows iteration: %w", ErrScanRow, err)
	}

	return templates, nil
}

func buildInsertQuery(t *domain.AvailabilityTemplate) squirrel.InsertBuilder {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	return psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"provider_id",
			"name",
			"days_of_week",
			"start_time",
			"end_time",
			"slot_duration",
			"break_duration",
			"timezone",
			"recurrence_pattern",
		).
		Values(
			t.ID,
			t.ProviderID,
			t.Name,
			pq.Array(toStrings(t.DaysOfWeek)),
			t.StartTime,
			t.EndTime,
			t.SlotDurationMinutes,
			t.BreakDurationMinutes,
			t.Timezone,
			t.RecurrencePattern,
		).
		Suffix("RETURNING created_at, updated_at")
}

func buildByProviderQuery(providerID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"provider_id",
		"name",
		"days_of_week",
		"start_time",
		"end_time",
		"slot_duration",
		"break_duration",
		"timezone",
		"recurrence_pattern",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("name ASC", "created_at ASC")
}

func toStrings(days []domain.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return out
}

func fromStrings(days []string) []domain.Weekday {
	out := make([]domain.Weekday, len(days))
	for i, d := range days {
		out[i] = domain.Weekday(d)
	}
	return out
}
