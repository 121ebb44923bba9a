package refuse_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appts     map[int64]*domain.Appointment
	refuseErr error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) Refuse(_ context.Context, id int64, reason string) error {
	if f.refuseErr != nil {
		return f.refuseErr
	}
	appt := f.appts[id]
	if appt.Status != domain.StatusRequested {
		return appointmentRepo.ErrStatusConflict
	}
	appt.Status = domain.StatusRefused
	appt.RefusalReason = &reason
	return nil
}

type fakeAvailabilityRepo struct {
	released []types.TimeString
}

func (f *fakeAvailabilityRepo) Release(_ context.Context, _ int64, _ time.Time, slot types.TimeString) error {
	f.released = append(f.released, slot)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func requestedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         10,
		ClientID:   1,
		MechanicID: 2,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:30",
		Status:     domain.StatusRequested,
	}
}

func TestUseCase_Execute(t *testing.T) {
	makeUC := func(appt *domain.Appointment) (*UseCase, *fakeAppointmentRepo, *fakeAvailabilityRepo, *fakePublisher) {
		repo := &fakeAppointmentRepo{appts: map[int64]*domain.Appointment{}}
		if appt != nil {
			repo.appts[appt.ID] = appt
		}
		availability := &fakeAvailabilityRepo{}
		publisher := &fakePublisher{}
		uc := NewUseCase(repo, availability, fakeTxManager{}, publisher, nopLogger{})
		return uc, repo, availability, publisher
	}

	t.Run("refuses appointment and releases slot", func(t *testing.T) {
		uc, repo, availability, publisher := makeUC(requestedAppointment())

		resp, err := uc.Execute(context.Background(), &Request{
			AppointmentID: 10,
			MechanicID:    2,
			Reason:        "Pas de pièces disponibles",
		})
		require.NoError(t, err)

		assert.Equal(t, "refused", resp.Status)
		require.NotNil(t, resp.RefusalReason)
		assert.Equal(t, "Pas de pièces disponibles", *resp.RefusalReason)

		assert.Equal(t, domain.StatusRefused, repo.appts[10].Status)
		assert.Equal(t, []types.TimeString{"09:30"}, availability.released)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.TypeAppointmentRefused, publisher.published[0].Type)
		assert.Equal(t, domain.StatusRequested, publisher.published[0].OldStatus)
	})

	t.Run("denies foreign mechanic", func(t *testing.T) {
		uc, repo, availability, _ := makeUC(requestedAppointment())

		_, err := uc.Execute(context.Background(), &Request{
			AppointmentID: 10,
			MechanicID:    99,
			Reason:        "не моя запись",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)

		assert.Equal(t, domain.StatusRequested, repo.appts[10].Status)
		assert.Empty(t, availability.released)
	})

	t.Run("rejects refusal of accepted appointment", func(t *testing.T) {
		appt := requestedAppointment()
		appt.Status = domain.StatusAccepted
		uc, _, availability, _ := makeUC(appt)

		_, err := uc.Execute(context.Background(), &Request{
			AppointmentID: 10,
			MechanicID:    2,
			Reason:        "слишком поздно",
		})
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Empty(t, availability.released)
	})

	t.Run("maps concurrent status change to illegal transition", func(t *testing.T) {
		uc, repo, availability, _ := makeUC(requestedAppointment())
		repo.refuseErr = appointmentRepo.ErrStatusConflict

		_, err := uc.Execute(context.Background(), &Request{
			AppointmentID: 10,
			MechanicID:    2,
			Reason:        "гонка решений",
		})
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Empty(t, availability.released)
	})

	t.Run("requires reason", func(t *testing.T) {
		uc, _, _, _ := makeUC(requestedAppointment())

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, MechanicID: 2, Reason: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		uc, _, _, _ := makeUC(nil)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, MechanicID: 2, Reason: "нет такой"})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
