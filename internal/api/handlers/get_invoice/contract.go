package get_invoice

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/invoices/models"
)

type InvoiceService interface {
	GetByNumber(ctx context.Context, number string, userID int64) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
