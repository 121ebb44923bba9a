package refuse_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
)

// UseCase реализует сценарий отклонения записи механиком.
// Переход в refused и возврат слота в календарь выполняются
// в одной сериализуемой транзакции, слот возвращается только
// после успешного перехода.
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

// Execute отклоняет запись от имени механика и освобождает слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)

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

		if appt.MechanicID != req.MechanicID {
			return fmt.Errorf("%w: appointment %d belongs to mechanic %d", ErrAccessDenied, appt.ID, appt.MechanicID)
		}

		if !appt.Status.CanTransitionTo(domain.StatusRefused) {
			return fmt.Errorf("%w: cannot refuse appointment in status %s", ErrIllegalTransition, appt.Status)
		}

		if refuseErr := uc.appointmentRepository.Refuse(txCtx, appt.ID, reason); refuseErr != nil {
			if errors.Is(refuseErr, appointmentRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: appointment %d changed status concurrently", ErrIllegalTransition, appt.ID)
			}
			return fmt.Errorf("%w: Execute - failed to refuse appointment %d: %v", ErrInternal, appt.ID, refuseErr)
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
	appt.Status = domain.StatusRefused
	appt.RefusalReason = &reason

	uc.logger.Info("refuse_appointment: appointment %d refused by mechanic %d, slot %s %s released",
		appt.ID, req.MechanicID, appt.Date.Format(domain.DateFormat), appt.StartTime)

	uc.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentRefused, appt, oldStatus))

	return FromDomainAppointment(appt), nil
}
