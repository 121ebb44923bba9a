package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/service/availability/models"
)

// Service сервис чтения календаря доступности
// Все мутации календаря идут через usecases координатора, не через этот сервис
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// List получает открытые слоты механика, сгруппированные по датам
// Результат отсортирован по дате, внутри даты - по времени
func (s *Service) List(ctx context.Context, mechanicID int64, date *time.Time) (*models.AvailabilityListResponse, error) {
	s.logger.Info("List: fetching availability for mechanic=%d, date=%v", mechanicID, date)

	if mechanicID <= 0 {
		return nil, fmt.Errorf("%w: mechanicId must be positive", ErrInvalidInput)
	}

	days, err := s.availabilityRepo.ListByMechanic(ctx, mechanicID, date)
	if err != nil {
		s.logger.Error("List: repository error for mechanic=%d: %v", mechanicID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d days for mechanic=%d", len(days), mechanicID)
	return models.FromDomainDays(mechanicID, days), nil
}
