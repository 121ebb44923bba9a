package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/dbmetrics"
	"github.com/garagedesk/GMS-AppointmentService/pkg/psqlbuilder"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// Repository репозиторий календаря доступности механиков
// Одна строка таблицы = один открытый слот (mechanic_id, slot_date, slot_time)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertSlots добавляет слоты в календарь механика на дату
// Уже опубликованные слоты не дублируются (ON CONFLICT DO NOTHING)
func (r *Repository) UpsertSlots(ctx context.Context, mechanicID int64, date time.Time, slots []types.TimeString) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("availability_slots").
		Columns("mechanic_id", "slot_date", "slot_time")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(mechanicID, date, slot)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (mechanic_id, slot_date, slot_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceDay заменяет набор слотов механика на дату целиком
// Вызывается внутри транзакции публикации календаря
func (r *Repository) ReplaceDay(ctx context.Context, mechanicID int64, date time.Time, slots []types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"mechanic_id": mechanicID, "slot_date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceDay - execute delete: %v", ErrExecQuery, err)
	}

	return r.UpsertSlots(ctx, mechanicID, date, slots)
}

// Reserve атомарно изымает слот из календаря
// Возвращает false, если слота нет - для вызывающего это "слот недоступен"
func (r *Repository) Reserve(ctx context.Context, mechanicID int64, date time.Time, slot types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{
			"mechanic_id": mechanicID,
			"slot_date":   date,
			"slot_time":   slot,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Release возвращает слот в календарь
// Идемпотентна: повторный вызов не меняет календарь (ON CONFLICT DO NOTHING)
func (r *Repository) Release(ctx context.Context, mechanicID int64, date time.Time, slot types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("mechanic_id", "slot_date", "slot_time").
		Values(mechanicID, date, slot).
		Suffix("ON CONFLICT (mechanic_id, slot_date, slot_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByMechanic получает открытые слоты механика, сгруппированные по датам
// Если date указана - только эта дата; сортировка по дате, затем по времени
func (r *Repository) ListByMechanic(ctx context.Context, mechanicID int64, date *time.Time) ([]*domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("slot_date", "slot_time").
		From("availability_slots").
		Where(squirrel.Eq{"mechanic_id": mechanicID}).
		OrderBy("slot_date ASC", "slot_time ASC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMechanic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMechanic - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.DayAvailability, 0)
	var current *domain.DayAvailability

	for rows.Next() {
		var slotDate time.Time
		var slotTime types.TimeString

		if err := rows.Scan(&slotDate, &slotTime); err != nil {
			return nil, fmt.Errorf("%w: ListByMechanic - scan slot: %v", ErrScanRow, err)
		}

		if current == nil || !current.Date.Equal(slotDate) {
			current = &domain.DayAvailability{
				MechanicID: mechanicID,
				Date:       slotDate,
				Slots:      make([]types.TimeString, 0),
			}
			days = append(days, current)
		}

		current.Slots = append(current.Slots, slotTime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMechanic - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}
