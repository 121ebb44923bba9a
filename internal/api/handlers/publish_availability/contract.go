package publish_availability

import (
	"context"

	publishAvailability "github.com/garagedesk/GMS-AppointmentService/internal/usecase/publish_availability"
)

type PublishAvailabilityUseCase interface {
	Execute(ctx context.Context, req *publishAvailability.Request) (*publishAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
