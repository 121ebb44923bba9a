package get_client_appointments

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByClient(ctx context.Context, clientID int64, status *string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
