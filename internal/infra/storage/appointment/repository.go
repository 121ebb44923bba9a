package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/dbmetrics"
	"github.com/garagedesk/GMS-AppointmentService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"client_id",
	"mechanic_id",
	"appointment_date",
	"start_time",
	"reason",
	"description",
	"status",
	"vehicle_brand",
	"vehicle_model",
	"vehicle_license_plate",
	"vehicle_year",
	"estimated_duration_minutes",
	"estimated_cost",
	"refusal_reason",
	"invoice_number",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись со статусом requested
// ID назначается базой (BIGSERIAL) - монотонный, без привязки к wall-clock
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"mechanic_id",
			"appointment_date",
			"start_time",
			"reason",
			"description",
			"status",
			"vehicle_brand",
			"vehicle_model",
			"vehicle_license_plate",
			"vehicle_year",
		).
		Values(
			appt.ClientID,
			appt.MechanicID,
			appt.Date,
			appt.StartTime,
			appt.Reason,
			appt.Description,
			appt.Status,
			appt.VehicleBrand,
			appt.VehicleModel,
			appt.VehicleLicensePlate,
			appt.VehicleYear,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции добавляет FOR UPDATE, чтобы зафиксировать строку до смены статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByClientID получает записи клиента, опционально фильтруя по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("appointment_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByMechanicWithFilter получает записи механика с гибкой фильтрацией
// PendingOnly - только ожидающие решения; ActiveOnly - только удерживающие слот
// Для конкретной даты сортировка по времени начала, иначе - сначала новые
func (r *Repository) GetByMechanicWithFilter(ctx context.Context, filter domain.MechanicAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"mechanic_id": filter.MechanicID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"appointment_date": *filter.Date}).
			OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	switch {
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	case filter.PendingOnly:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.PendingStatuses)})
	case filter.ActiveOnly:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.NonTerminalStatuses)})
	}

	// Внутри транзакции блокируем строки - публикация календаря сверяется с ними
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMechanicWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMechanicWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Accept переводит запись requested -> accepted с деталями оценки
// Ожидаемый статус входит в WHERE: гонка двух решений не пройдет дважды
func (r *Repository) Accept(ctx context.Context, id int64, durationMinutes int, cost float64) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusAccepted).
		Set("estimated_duration_minutes", durationMinutes).
		Set("estimated_cost", cost).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusRequested}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Accept - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, "Accept", query, args)
}

// Refuse переводит запись requested -> refused с причиной отказа
func (r *Repository) Refuse(ctx context.Context, id int64, reason string) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusRefused).
		Set("refusal_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusRequested}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Refuse - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, "Refuse", query, args)
}

// Cancel переводит запись requested -> cancelled
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusRequested}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, "Cancel", query, args)
}

// MarkPaid переводит запись accepted -> paid и фиксирует номер счета
// Единственное место, где пишется invoice_number
func (r *Repository) MarkPaid(ctx context.Context, id int64, invoiceNumber string) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusPaid).
		Set("invoice_number", invoiceNumber).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusAccepted}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, "MarkPaid", query, args)
}

func (r *Repository) execStatusUpdate(ctx context.Context, op string, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	// 0 строк: либо записи нет, либо статус уже сменился
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClientID,
		&appt.MechanicID,
		&appt.Date,
		&appt.StartTime,
		&appt.Reason,
		&appt.Description,
		&appt.Status,
		&appt.VehicleBrand,
		&appt.VehicleModel,
		&appt.VehicleLicensePlate,
		&appt.VehicleYear,
		&appt.EstimatedDurationMinutes,
		&appt.EstimatedCost,
		&appt.RefusalReason,
		&appt.InvoiceNumber,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
