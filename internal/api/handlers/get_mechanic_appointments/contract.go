package get_mechanic_appointments

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByMechanic(ctx context.Context, req *models.GetMechanicAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
