package accept_appointment

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	Accept(ctx context.Context, id int64, req *models.AcceptAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
