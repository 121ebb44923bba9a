package publish_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// UseCase реализует публикацию календаря доступности механика.
// Публикация не может вернуть в календарь слот, который удерживается
// активной записью: иначе один слот можно было бы продать дважды.
type UseCase struct {
	availabilityRepo      AvailabilityRepository
	appointmentRepository AppointmentRepository
	staffClient           StaffServiceClient
	txManager             TransactionManager
	publisher             EventPublisher
	timeProvider          TimeProvider
	window                domain.BookingWindow
	logger                Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepository AppointmentRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	window domain.BookingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo:      availabilityRepo,
		appointmentRepository: appointmentRepository,
		staffClient:           staffClient,
		txManager:             txManager,
		publisher:             publisher,
		timeProvider:          timeProvider,
		window:                window,
		logger:                logger,
	}
}

// Execute публикует набор слотов механика на указанный день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := uc.staffClient.GetMechanic(ctx, req.MechanicID); err != nil {
		if errors.Is(err, staffservice.ErrMechanicNotFound) {
			return nil, fmt.Errorf("%w: mechanic %d", ErrMechanicNotFound, req.MechanicID)
		}
		return nil, fmt.Errorf("%w: Execute - failed to get mechanic %d: %v", ErrInternal, req.MechanicID, err)
	}

	slots := req.Slots
	if req.GenerateFullDay {
		var err error
		slots, err = uc.window.FullDaySlots()
		if err != nil {
			return nil, fmt.Errorf("%w: Execute - failed to generate full day: %v", ErrInternal, err)
		}
	}

	slots, err := uc.normalizeSlots(slots)
	if err != nil {
		return nil, err
	}

	var published []string

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем активные записи дня и сверяем с ними публикуемые слоты
		active, listErr := uc.appointmentRepository.GetByMechanicWithFilter(txCtx, domain.MechanicAppointmentsFilter{
			MechanicID: req.MechanicID,
			Date:       &req.Date,
			ActiveOnly: true,
		})
		if listErr != nil {
			return fmt.Errorf("%w: Execute - failed to list active appointments: %v", ErrInternal, listErr)
		}

		held := make(map[types.TimeString]struct{}, len(active))
		for _, appt := range active {
			held[appt.StartTime] = struct{}{}
		}

		for _, slot := range slots {
			if _, taken := held[slot]; taken {
				return fmt.Errorf("%w: %s %s", ErrSlotReserved, req.Date.Format(domain.DateFormat), slot)
			}
		}

		var writeErr error
		if req.Merge {
			writeErr = uc.availabilityRepo.UpsertSlots(txCtx, req.MechanicID, req.Date, slots)
		} else {
			writeErr = uc.availabilityRepo.ReplaceDay(txCtx, req.MechanicID, req.Date, slots)
		}
		if writeErr != nil {
			return fmt.Errorf("%w: Execute - failed to write slots: %v", ErrInternal, writeErr)
		}

		days, listDayErr := uc.availabilityRepo.ListByMechanic(txCtx, req.MechanicID, &req.Date)
		if listDayErr != nil {
			return fmt.Errorf("%w: Execute - failed to read day back: %v", ErrInternal, listDayErr)
		}

		published = published[:0]
		for _, day := range days {
			for _, slot := range day.Slots {
				published = append(published, string(slot))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("publish_availability: mechanic %d published %d slots for %s (merge=%t)",
		req.MechanicID, len(published), req.Date.Format(domain.DateFormat), req.Merge)

	uc.publisher.Publish(ctx, events.NewAvailabilityEvent(req.MechanicID))

	return &Response{
		MechanicID: req.MechanicID,
		Date:       req.Date,
		Slots:      published,
	}, nil
}
