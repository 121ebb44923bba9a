package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
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

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appts {
		if appt.ClientID != clientID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByMechanicWithFilter(_ context.Context, filter domain.MechanicAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appts {
		if appt.MechanicID != filter.MechanicID {
			continue
		}
		if filter.PendingOnly && appt.Status != domain.StatusRequested {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Accept(_ context.Context, id int64, durationMinutes int, cost float64) error {
	appt := f.appts[id]
	if appt.Status != domain.StatusRequested {
		return appointmentRepo.ErrStatusConflict
	}
	appt.Status = domain.StatusAccepted
	appt.EstimatedDurationMinutes = &durationMinutes
	appt.EstimatedCost = &cost
	return nil
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

func makeService(appts ...*domain.Appointment) (*Service, *fakeAppointmentRepo, *fakePublisher) {
	repo := &fakeAppointmentRepo{appts: map[int64]*domain.Appointment{}}
	for _, appt := range appts {
		repo.appts[appt.ID] = appt
	}
	publisher := &fakePublisher{}
	return NewService(repo, publisher, nopLogger{}), repo, publisher
}

func requestedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         10,
		ClientID:   1,
		MechanicID: 2,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:30",
		Reason:     "Révision",
		Status:     domain.StatusRequested,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("visible to client", func(t *testing.T) {
		svc, _, _ := makeService(requestedAppointment())

		resp, err := svc.GetByID(context.Background(), 10, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
	})

	t.Run("visible to mechanic", func(t *testing.T) {
		svc, _, _ := makeService(requestedAppointment())

		_, err := svc.GetByID(context.Background(), 10, 2)
		require.NoError(t, err)
	})

	t.Run("hidden from strangers", func(t *testing.T) {
		svc, _, _ := makeService(requestedAppointment())

		_, err := svc.GetByID(context.Background(), 10, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := makeService()

		_, err := svc.GetByID(context.Background(), 10, 1)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_Accept(t *testing.T) {
	acceptReq := func(mechanicID int64) *models.AcceptAppointmentRequest {
		return &models.AcceptAppointmentRequest{
			MechanicID:               mechanicID,
			EstimatedDurationMinutes: 60,
			EstimatedCost:            180,
		}
	}

	t.Run("accepts with estimate", func(t *testing.T) {
		svc, repo, publisher := makeService(requestedAppointment())

		resp, err := svc.Accept(context.Background(), 10, acceptReq(2))
		require.NoError(t, err)

		assert.Equal(t, "accepted", resp.Status)
		require.NotNil(t, resp.EstimatedCost)
		assert.InDelta(t, 180.0, *resp.EstimatedCost, 0.001)

		assert.Equal(t, domain.StatusAccepted, repo.appts[10].Status)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.TypeAppointmentAccepted, publisher.published[0].Type)
		assert.Equal(t, domain.StatusRequested, publisher.published[0].OldStatus)
	})

	t.Run("denies foreign mechanic", func(t *testing.T) {
		svc, repo, _ := makeService(requestedAppointment())

		_, err := svc.Accept(context.Background(), 10, acceptReq(99))
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusRequested, repo.appts[10].Status)
	})

	t.Run("rejects double acceptance", func(t *testing.T) {
		svc, _, _ := makeService(requestedAppointment())

		_, err := svc.Accept(context.Background(), 10, acceptReq(2))
		require.NoError(t, err)

		_, err = svc.Accept(context.Background(), 10, acceptReq(2))
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("rejects acceptance of cancelled appointment", func(t *testing.T) {
		appt := requestedAppointment()
		appt.Status = domain.StatusCancelled
		svc, _, _ := makeService(appt)

		_, err := svc.Accept(context.Background(), 10, acceptReq(2))
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("validates estimate", func(t *testing.T) {
		svc, _, _ := makeService(requestedAppointment())

		req := acceptReq(2)
		req.EstimatedCost = 0

		_, err := svc.Accept(context.Background(), 10, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ListByClient(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		accepted := requestedAppointment()
		accepted.ID = 11
		accepted.Status = domain.StatusAccepted
		svc, _, _ := makeService(requestedAppointment(), accepted)

		status := "accepted"
		resp, err := svc.ListByClient(context.Background(), 1, &status)
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
		assert.Equal(t, "accepted", resp.Appointments[0].Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _, _ := makeService()

		status := "planned"
		_, err := svc.ListByClient(context.Background(), 1, &status)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ListByMechanic(t *testing.T) {
	accepted := requestedAppointment()
	accepted.ID = 11
	accepted.Status = domain.StatusAccepted
	svc, _, _ := makeService(requestedAppointment(), accepted)

	resp, err := svc.ListByMechanic(context.Background(), &models.GetMechanicAppointmentsRequest{
		MechanicID:  2,
		PendingOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "requested", resp.Appointments[0].Status)
}
