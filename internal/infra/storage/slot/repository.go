package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "appointment_slots"

// batchSize ограничивает число строк в одном INSERT (лимит параметров PostgreSQL 65535)
const batchSize = 500

// lockProviderQuery транзакционная advisory-блокировка на провайдера
// Снимается автоматически при commit/rollback
const lockProviderQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

var insertColumns = []string{
	"id",
	"availability_id",
	"provider_id",
	"start_time",
	"end_time",
	"status",
	"appointment_type",
	"location_type",
	"specialization",
	"price",
	"requirements",
	"is_deleted",
}

var columns = append(append([]string{}, insertColumns...), "created_at", "updated_at")

// activeOnly условие активного слота: доступен и не удален
var activeOnly = squirrel.Eq{"status": domain.SlotStatusAvailable, "is_deleted": false}

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет слоты пачками
// ID генерируются для слотов без ID; CreatedAt/UpdatedAt проставляются из ответа БД
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for from := 0; from < len(slots); from += batchSize {
		to := from + batchSize
		if to > len(slots) {
			to = len(slots)
		}
		chunk := slots[from:to]

		query, args, err := buildInsertQuery(chunk).ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
		}

		byID := make(map[uuid.UUID]*domain.Slot, len(chunk))
		for _, s := range chunk {
			byID[s.ID] = s
		}

		for rows.Next() {
			var id uuid.UUID
			var createdAt, updatedAt time.Time
			if err := rows.Scan(&id, &createdAt, &updatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("%w: CreateBatch - scan returning: %w", ErrScanRow, err)
			}
			if s, ok := byID[id]; ok {
				s.CreatedAt = createdAt
				s.UpdatedAt = updatedAt
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return fmt.Errorf("%w: CreateBatch - rows iteration: %w", ErrScanRow, err)
		}
	}

	return nil
}

// GetByAvailabilityID получает все слоты окна (любой статус, включая удаленные)
func (r *Repository) GetByAvailabilityID(ctx context.Context, availabilityID uuid.UUID) ([]*domain.Slot, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"availability_id": availabilityID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAvailabilityID - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetByAvailabilityID", query, args)
}

// GetByAvailabilityIDs получает слоты нескольких окон одним запросом
func (r *Repository) GetByAvailabilityIDs(ctx context.Context, availabilityIDs []uuid.UUID) ([]*domain.Slot, error) {
	if len(availabilityIDs) == 0 {
		return []*domain.Slot{}, nil
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"availability_id": availabilityIDs}).
		OrderBy("availability_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAvailabilityIDs - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetByAvailabilityIDs", query, args)
}

// GetByAvailabilityIDAndStatus получает слоты окна с указанным статусом
func (r *Repository) GetByAvailabilityIDAndStatus(ctx context.Context, availabilityID uuid.UUID, status domain.SlotStatus) ([]*domain.Slot, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"availability_id": availabilityID, "status": status}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAvailabilityIDAndStatus - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetByAvailabilityIDAndStatus", query, args)
}

// DeleteByAvailabilityID физически удаляет все слоты окна
func (r *Repository) DeleteByAvailabilityID(ctx context.Context, availabilityID uuid.UUID) (int64, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"availability_id": availabilityID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAvailabilityID - build delete query: %v", ErrBuildQuery, err)
	}
	return r.exec(ctx, "DeleteByAvailabilityID", query, args)
}

// SoftDeleteByAvailabilityID помечает удаленными все не забронированные слоты окна
func (r *Repository) SoftDeleteByAvailabilityID(ctx context.Context, availabilityID uuid.UUID) (int64, error) {
	query, args, err := buildSoftDeleteQuery(availabilityID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteByAvailabilityID - build update query: %v", ErrBuildQuery, err)
	}
	return r.exec(ctx, "SoftDeleteByAvailabilityID", query, args)
}

// GetActiveByProviderInRange получает активные слоты провайдера, пересекающиеся с [from, to)
func (r *Repository) GetActiveByProviderInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Slot, error) {
	query, args, err := buildActiveInRangeQuery(providerID, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderInRange - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "GetActiveByProviderInRange", query, args)
}

// SearchAvailable ищет активные слоты по критериям всех провайдеров
func (r *Repository) SearchAvailable(ctx context.Context, criteria domain.SlotSearchCriteria) ([]*domain.Slot, error) {
	query, args, err := buildSearchQuery(criteria).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SearchAvailable - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "SearchAvailable", query, args)
}

// LockProvider берет advisory-блокировку провайдера до конца текущей транзакции
// Все записи слотов одного провайдера проходят через эту блокировку,
// поэтому проверка пересечений и вставка не гоняются между собой
func (r *Repository) LockProvider(ctx context.Context, providerID uuid.UUID) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrNotInTransaction
	}

	if _, err := tx.ExecContext(ctx, lockProviderQuery, providerID.String()); err != nil {
		return fmt.Errorf("%w: LockProvider - provider=%s: %w", ErrExecQuery, providerID, err)
	}
	return nil
}

func buildInsertQuery(slots []*domain.Slot) squirrel.InsertBuilder {
	insertBuilder := psqlbuilder.Insert(tableName).Columns(insertColumns...)

	for _, s := range slots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		insertBuilder = insertBuilder.Values(
			s.ID,
			s.AvailabilityID,
			s.ProviderID,
			s.Start.UTC(),
			s.End.UTC(),
			s.Status,
			s.AppointmentType,
			s.LocationType,
			s.Specialization,
			s.Price,
			s.Requirements,
			s.IsDeleted,
		)
	}

	return insertBuilder.Suffix("RETURNING id, created_at, updated_at")
}

func buildSoftDeleteQuery(availabilityID uuid.UUID) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("is_deleted", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"availability_id": availabilityID, "is_deleted": false}).
		Where(squirrel.NotEq{"status": domain.SlotStatusBooked})
}

func buildActiveInRangeQuery(providerID uuid.UUID, from, to time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(activeOnly).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		Where(squirrel.Gt{"end_time": from.UTC()}).
		OrderBy("start_time ASC")
}

func buildSearchQuery(c domain.SlotSearchCriteria) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(activeOnly)

	if c.Specialization != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialization": *c.Specialization})
	}
	if c.LocationType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_type": *c.LocationType})
	}
	if c.AppointmentType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_type": *c.AppointmentType})
	}
	if c.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": c.From.UTC()})
	}
	if c.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_time": c.To.UTC()})
	}
	if c.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price": *c.MinPrice})
	}
	if c.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price": *c.MaxPrice})
	}

	return selectBuilder.OrderBy("provider_id ASC", "start_time ASC")
}

func (r *Repository) exec(ctx context.Context, op, query string, args []interface{}) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	return affected, nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.AvailabilityID,
			&s.ProviderID,
			&s.Start,
			&s.End,
			&s.Status,
			&s.AppointmentType,
			&s.LocationType,
			&s.Specialization,
			&s.Price,
			&s.Requirements,
			&s.IsDeleted,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %w", ErrScanRow, op, err)
		}

		s.Start = s.Start.UTC()
		s.End = s.End.UTC()
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return slots, nil
}
