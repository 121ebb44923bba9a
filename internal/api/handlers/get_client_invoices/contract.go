package get_client_invoices

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/invoices/models"
)

type InvoiceService interface {
	ListByClient(ctx context.Context, clientID int64) (*models.InvoiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
