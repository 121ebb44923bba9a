package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/dbmetrics"
	"github.com/garagedesk/GMS-AppointmentService/pkg/psqlbuilder"
	"github.com/lib/pq"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var invoiceColumns = []string{
	"number",
	"appointment_id",
	"client_id",
	"amount",
	"status",
	"created_at",
}

// Repository репозиторий для работы со счетами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый счет
// UNIQUE(appointment_id) гарантирует не больше одного счета на запись
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns("number", "appointment_id", "client_id", "amount", "status").
		Values(inv.Number, inv.AppointmentID, inv.ClientID, inv.Amount, inv.Status).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateInvoice
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time

	return inv, nil
}

// GetByNumber получает счет по номеру
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	var inv domain.Invoice
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.Number,
		&inv.AppointmentID,
		&inv.ClientID,
		&inv.Amount,
		&inv.Status,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - scan invoice: %v", ErrScanRow, err)
	}

	inv.CreatedAt = createdAt.Time

	return &inv, nil
}

// GetByClientID получает счета клиента, сначала новые
func (r *Repository) GetByClientID(ctx context.Context, clientID int64) ([]*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		var createdAt sql.NullTime

		err := rows.Scan(
			&inv.Number,
			&inv.AppointmentID,
			&inv.ClientID,
			&inv.Amount,
			&inv.Status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByClientID - scan invoice: %v", ErrScanRow, err)
		}

		inv.CreatedAt = createdAt.Time
		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - rows error: %v", ErrScanRow, err)
	}

	return invoices, nil
}

// isUniqueViolation проверяет ошибку нарушения уникальности (код 23505 в Postgres)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
