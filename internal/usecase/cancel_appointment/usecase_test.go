package cancel_appointment

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
	appts map[int64]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64) error {
	appt := f.appts[id]
	if appt.Status != domain.StatusRequested {
		return appointmentRepo.ErrStatusConflict
	}
	appt.Status = domain.StatusCancelled
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

func TestUseCase_Execute(t *testing.T) {
	makeUC := func(status domain.AppointmentStatus) (*UseCase, *fakeAppointmentRepo, *fakeAvailabilityRepo, *fakePublisher) {
		repo := &fakeAppointmentRepo{appts: map[int64]*domain.Appointment{
			10: {
				ID:         10,
				ClientID:   1,
				MechanicID: 2,
				Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				StartTime:  "09:30",
				Status:     status,
			},
		}}
		availability := &fakeAvailabilityRepo{}
		publisher := &fakePublisher{}
		uc := NewUseCase(repo, availability, fakeTxManager{}, publisher, nopLogger{})
		return uc, repo, availability, publisher
	}

	t.Run("cancels requested appointment and releases slot", func(t *testing.T) {
		uc, repo, availability, publisher := makeUC(domain.StatusRequested)

		resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, ClientID: 1})
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, domain.StatusCancelled, repo.appts[10].Status)
		assert.Equal(t, []types.TimeString{"09:30"}, availability.released)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.TypeAppointmentCancelled, publisher.published[0].Type)
	})

	t.Run("denies foreign client", func(t *testing.T) {
		uc, repo, availability, _ := makeUC(domain.StatusRequested)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, ClientID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)

		assert.Equal(t, domain.StatusRequested, repo.appts[10].Status)
		assert.Empty(t, availability.released)
	})

	t.Run("accepted appointment cannot be cancelled", func(t *testing.T) {
		uc, _, availability, _ := makeUC(domain.StatusAccepted)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, ClientID: 1})
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Empty(t, availability.released)
	})

	t.Run("terminal statuses stay frozen", func(t *testing.T) {
		for _, status := range []domain.AppointmentStatus{domain.StatusRefused, domain.StatusCancelled, domain.StatusPaid} {
			uc, _, _, _ := makeUC(status)

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, ClientID: 1})
			assert.ErrorIs(t, err, ErrIllegalTransition, "status %s", status)
		}
	})

	t.Run("unknown appointment", func(t *testing.T) {
		uc, _, _, _ := makeUC(domain.StatusRequested)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 404, ClientID: 1})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
