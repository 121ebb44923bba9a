package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
)

// UseCase реализует сценарий отмены записи клиентом.
// Отменить можно только запись, ожидающую решения механика.
type UseCase struct {
	appointmentRepository AppointmentRepository
	availabilityRepo      AvailabilityRepository
	txManager             TransactionManager
	publisher             EventPublisher
	logger                Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepository AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepository: appointmentRepository,
		availabilityRepo:      availabilityRepo,
		txManager:             txManager,
		publisher:             publisher,
		logger:                logger,
	}
}

// Execute отменяет запись от имени клиента-владельца и освобождает слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	var appt *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var getErr error
		appt, getErr = uc.appointmentRepository.GetByID(txCtx, req.AppointmentID)
		if getErr != nil {
			if errors.Is(getErr, appointmentRepo.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrAppointmentNotFound, req.AppointmentID)
			}
			return fmt.Errorf("%w: Execute - failed to get appointment %d: %v", ErrInternal, req.AppointmentID, getErr)
		}

		if appt.ClientID != req.ClientID {
			return fmt.Errorf("%w: appointment %d belongs to client %d", ErrAccessDenied, appt.ID, appt.ClientID)
		}

		if !appt.Status.CanTransitionTo(domain.StatusCancelled) {
			return fmt.Errorf("%w: cannot cancel appointment in status %s", ErrIllegalTransition, appt.Status)
		}

		if cancelErr := uc.appointmentRepository.Cancel(txCtx, appt.ID); cancelErr != nil {
			if errors.Is(cancelErr, appointmentRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: appointment %d changed status concurrently", ErrIllegalTransition, appt.ID)
			}
			return fmt.Errorf("%w: Execute - failed to cancel appointment %d: %v", ErrInternal, appt.ID, cancelErr)
		}

		// Слот возвращается только после успешного перехода
		if releaseErr := uc.availabilityRepo.Release(txCtx, appt.MechanicID, appt.Date, appt.StartTime); releaseErr != nil {
			return fmt.Errorf("%w: Execute - failed to release slot: %v", ErrInternal, releaseErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	oldStatus := appt.Status
	appt.Status = domain.StatusCancelled

	uc.logger.Info("cancel_appointment: appointment %d cancelled by client %d, slot %s %s released",
		appt.ID, req.ClientID, appt.Date.Format(domain.DateFormat), appt.StartTime)

	uc.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentCancelled, appt, oldStatus))

	return FromDomainAppointment(appt), nil
}
