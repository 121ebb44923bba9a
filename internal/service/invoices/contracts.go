package invoices

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	GetByClientID(ctx context.Context, clientID int64) ([]*domain.Invoice, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
