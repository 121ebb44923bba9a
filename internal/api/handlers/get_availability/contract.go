package get_availability

import (
	"context"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/availability/models"
)

type AvailabilityService interface {
	List(ctx context.Context, mechanicID int64, date *time.Time) (*models.AvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
