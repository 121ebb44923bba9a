package request_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/vehicleservice"
)

// UseCase реализует сценарий создания записи: атомарно резервирует слот
// в календаре механика и создаёт запись в статусе requested.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	vehicleClient    VehicleServiceClient
	staffClient      StaffServiceClient
	txManager        TransactionManager
	publisher        EventPublisher
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	vehicleClient VehicleServiceClient,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		vehicleClient:    vehicleClient,
		staffClient:      staffClient,
		txManager:        txManager,
		publisher:        publisher,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute создает запись клиента к механику на указанный слот.
//
// Слот и запись живут или умирают вместе: резервирование и создание
// выполняются в одной сериализуемой транзакции, при ошибке создания
// слот возвращается в календарь компенсирующим действием.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	mechanic, err := uc.staffClient.GetMechanic(ctx, req.MechanicID)
	if err != nil {
		if errors.Is(err, staffservice.ErrMechanicNotFound) {
			return nil, fmt.Errorf("%w: mechanic %d", ErrMechanicNotFound, req.MechanicID)
		}
		return nil, fmt.Errorf("%w: Execute - failed to get mechanic %d: %v", ErrInternal, req.MechanicID, err)
	}
	if !mechanic.IsActive {
		return nil, fmt.Errorf("%w: mechanic %d", ErrMechanicInactive, req.MechanicID)
	}

	vehicle, err := uc.vehicleClient.GetVehicle(ctx, req.ClientID, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleservice.ErrVehicleNotFound) {
			return nil, fmt.Errorf("%w: vehicle %d of client %d", ErrVehicleNotFound, req.VehicleID, req.ClientID)
		}
		return nil, fmt.Errorf("%w: Execute - failed to get vehicle %d: %v", ErrInternal, req.VehicleID, err)
	}

	appt := &domain.Appointment{
		ClientID:            req.ClientID,
		MechanicID:          req.MechanicID,
		Date:                req.Date,
		StartTime:           req.StartTime,
		Reason:              req.Reason,
		Description:         req.Description,
		Status:              domain.StatusRequested,
		VehicleBrand:        vehicle.Brand,
		VehicleModel:        vehicle.Model,
		VehicleLicensePlate: vehicle.LicensePlate,
		VehicleYear:         vehicle.Year,
	}

	var created *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reserved, reserveErr := uc.availabilityRepo.Reserve(txCtx, req.MechanicID, req.Date, req.StartTime)
		if reserveErr != nil {
			return fmt.Errorf("%w: Execute - failed to reserve slot: %v", ErrInternal, reserveErr)
		}
		if !reserved {
			return fmt.Errorf("%w: mechanic %d, %s %s", ErrSlotNotAvailable,
				req.MechanicID, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		var createErr error
		created, createErr = uc.appointmentRepo.Create(txCtx, appt)
		if createErr != nil {
			// Компенсация: возвращаем слот независимо от судьбы транзакции.
			// Release идемпотентен, поэтому откат транзакции поверх него безопасен.
			if releaseErr := uc.availabilityRepo.Release(txCtx, req.MechanicID, req.Date, req.StartTime); releaseErr != nil {
				uc.logger.Error("request_appointment: failed to release slot after create failure: %v", releaseErr)
			}
			return fmt.Errorf("%w: Execute - failed to create appointment: %v", ErrInternal, createErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("request_appointment: created appointment %d for client %d with mechanic %d at %s %s",
		created.ID, created.ClientID, created.MechanicID, created.Date.Format(domain.DateFormat), created.StartTime)

	uc.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentRequested, created, ""))

	return FromDomainAppointment(created), nil
}
