package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
	"github.com/garagedesk/GMS-AppointmentService/pkg/ptr"
)

// Service сервис для работы с записями на обслуживание
type Service struct {
	appointmentRepo AppointmentRepository
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видна её клиенту и её механику
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.ClientID != userID && appt.MechanicID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByClient получает записи клиента, опционально фильтруя по статусу
func (s *Service) ListByClient(ctx context.Context, clientID int64, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByClient: fetching appointments for client=%d, status=%v", clientID, status)

	var domainStatus *domain.AppointmentStatus
	if status != nil {
		st, err := models.ToDomainAppointmentStatus(*status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, clientID, domainStatus)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d appointments for client=%d", len(appointments), clientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListByMechanic получает записи механика с фильтрацией
// PendingOnly=true дает проекцию "ожидают решения" для дашборда механика
func (s *Service) ListByMechanic(ctx context.Context, req *models.GetMechanicAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByMechanic: fetching appointments for mechanic=%d, pendingOnly=%v",
		req.MechanicID, req.PendingOnly)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByMechanic: invalid filter for mechanic=%d: %v", req.MechanicID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByMechanicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByMechanic: repository error for mechanic=%d: %v", req.MechanicID, err)
		return nil, fmt.Errorf("%w: ListByMechanic - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByMechanic: fetched %d appointments for mechanic=%d", len(appointments), req.MechanicID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Accept принимает запись от имени механика
// Требует оценку длительности и стоимости; календарь не трогаем -
// слот был изъят при создании запроса и остается изъятым
func (s *Service) Accept(ctx context.Context, id int64, req *models.AcceptAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Accept: accepting appointment id=%d by mechanic=%d", id, req.MechanicID)

	if err := validateAcceptRequest(req); err != nil {
		s.logger.Warn("Accept: validation failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Accept: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Accept: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Accept - repository error: %v", ErrInternal, err)
	}

	// Решение может принимать только механик, к которому запись
	if appt.MechanicID != req.MechanicID {
		s.logger.Warn("Accept: access denied for mechanic=%d to appointment id=%d", req.MechanicID, id)
		return nil, ErrAccessDenied
	}

	if !appt.Status.CanTransitionTo(domain.StatusAccepted) {
		s.logger.Warn("Accept: illegal transition for appointment id=%d from status=%s", id, appt.Status)
		return nil, ErrIllegalTransition
	}

	oldStatus := appt.Status

	if err := s.appointmentRepo.Accept(ctx, id, req.EstimatedDurationMinutes, req.EstimatedCost); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("Accept: status conflict for appointment id=%d", id)
			return nil, ErrIllegalTransition
		}
		s.logger.Error("Accept: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Accept - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusAccepted
	appt.EstimatedDurationMinutes = ptr.Ptr(req.EstimatedDurationMinutes)
	appt.EstimatedCost = ptr.Ptr(req.EstimatedCost)

	s.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentAccepted, appt, oldStatus))

	s.logger.Info("Accept: successfully accepted appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

func validateAcceptRequest(req *models.AcceptAppointmentRequest) error {
	if req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanicId must be positive", ErrInvalidInput)
	}

	if req.EstimatedDurationMinutes < domain.MinEstimatedDurationMinutes ||
		req.EstimatedDurationMinutes > domain.MaxEstimatedDurationMinutes {
		return fmt.Errorf("%w: estimatedDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinEstimatedDurationMinutes, domain.MaxEstimatedDurationMinutes)
	}

	if req.EstimatedCost <= 0 {
		return fmt.Errorf("%w: estimatedCost must be positive", ErrInvalidInput)
	}

	return nil
}
