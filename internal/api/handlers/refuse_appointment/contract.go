package refuse_appointment

import (
	"context"

	refuseAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/refuse_appointment"
)

type RefuseAppointmentUseCase interface {
	Execute(ctx context.Context, req *refuseAppointment.Request) (*refuseAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
