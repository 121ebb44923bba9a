package request_appointment

import (
	"context"

	requestAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/request_appointment"
)

type RequestAppointmentUseCase interface {
	Execute(ctx context.Context, req *requestAppointment.Request) (*requestAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
