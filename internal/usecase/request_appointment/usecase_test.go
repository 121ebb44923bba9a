package request_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/vehicleservice"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	nextID    int64
	created   []*domain.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *appt
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeAvailabilityRepo struct {
	slots map[string]struct{}
}

func slotKey(mechanicID int64, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("%d|%s|%s", mechanicID, date.Format(domain.DateFormat), slot)
}

func newFakeAvailabilityRepo(keys ...string) *fakeAvailabilityRepo {
	slots := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		slots[k] = struct{}{}
	}
	return &fakeAvailabilityRepo{slots: slots}
}

func (f *fakeAvailabilityRepo) Reserve(_ context.Context, mechanicID int64, date time.Time, slot types.TimeString) (bool, error) {
	key := slotKey(mechanicID, date, slot)
	if _, ok := f.slots[key]; !ok {
		return false, nil
	}
	delete(f.slots, key)
	return true, nil
}

func (f *fakeAvailabilityRepo) Release(_ context.Context, mechanicID int64, date time.Time, slot types.TimeString) error {
	f.slots[slotKey(mechanicID, date, slot)] = struct{}{}
	return nil
}

type fakeVehicleClient struct {
	vehicle *vehicleservice.Vehicle
	err     error
}

func (f *fakeVehicleClient) GetVehicle(_ context.Context, _, _ int64) (*vehicleservice.Vehicle, error) {
	return f.vehicle, f.err
}

type fakeStaffClient struct {
	mechanic *staffservice.Mechanic
	err      error
}

func (f *fakeStaffClient) GetMechanic(_ context.Context, _ int64) (*staffservice.Mechanic, error) {
	return f.mechanic, f.err
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

type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	availability *fakeAvailabilityRepo
	publisher    *fakePublisher
}

func newTestEnv(availability *fakeAvailabilityRepo) *testEnv {
	year := 2021
	env := &testEnv{
		appointments: &fakeAppointmentRepo{},
		availability: availability,
		publisher:    &fakePublisher{},
	}
	env.uc = NewUseCase(
		env.appointments,
		env.availability,
		&fakeVehicleClient{vehicle: &vehicleservice.Vehicle{
			ID: 7, ClientID: 1, Brand: "Renault", Model: "Clio", LicensePlate: "AB-123-CD", Year: &year,
		}},
		&fakeStaffClient{mechanic: &staffservice.Mechanic{ID: 2, Name: "Marc", IsActive: true}},
		fakeTxManager{},
		env.publisher,
		fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
	return env
}

func validRequest() *Request {
	return &Request{
		ClientID:   1,
		MechanicID: 2,
		VehicleID:  7,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:30",
		Reason:     "Vidange",
	}
}

func TestUseCase_Execute(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("reserves slot and creates requested appointment", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))

		resp, err := env.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, "requested", resp.Status)
		assert.Equal(t, "Renault", resp.VehicleBrand)
		assert.Equal(t, "AB-123-CD", resp.VehicleLicensePlate)

		// Слот ушел из календаря
		assert.Empty(t, env.availability.slots)

		require.Len(t, env.publisher.published, 1)
		assert.Equal(t, events.TypeAppointmentRequested, env.publisher.published[0].Type)
	})

	t.Run("second request for the same slot loses", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))

		_, err := env.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		_, err = env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)

		// Ровно одна запись, слот не задвоился
		assert.Len(t, env.appointments.created, 1)
	})

	t.Run("missing slot yields no appointment", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo())

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Empty(t, env.appointments.created)
		assert.Empty(t, env.publisher.published)
	})

	t.Run("slot is released when create fails", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))
		env.appointments.createErr = errors.New("insert failed")

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)

		// Компенсация вернула слот в календарь
		_, ok := env.availability.slots[slotKey(2, date, "09:30")]
		assert.True(t, ok)
		assert.Empty(t, env.publisher.published)
	})

	t.Run("failed create round-trips the calendar, repeated release adds nothing", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(
			slotKey(2, date, "09:30"),
			slotKey(2, date, "10:00"),
			slotKey(3, date, "09:30"),
		))
		env.appointments.createErr = errors.New("insert failed")

		before := make(map[string]struct{}, len(env.availability.slots))
		for k := range env.availability.slots {
			before[k] = struct{}{}
		}

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)

		// Резерв + компенсация вернули календарь к исходному множеству
		assert.Equal(t, before, env.availability.slots)

		// Повторный возврат того же слота ничего не меняет
		require.NoError(t, env.availability.Release(context.Background(), 2, date, "09:30"))
		assert.Equal(t, before, env.availability.slots)
	})

	t.Run("rejects unknown mechanic", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))
		env.uc.staffClient = &fakeStaffClient{err: staffservice.ErrMechanicNotFound}

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrMechanicNotFound)
	})

	t.Run("rejects inactive mechanic", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))
		env.uc.staffClient = &fakeStaffClient{mechanic: &staffservice.Mechanic{ID: 2, IsActive: false}}

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrMechanicInactive)
	})

	t.Run("rejects unknown vehicle", func(t *testing.T) {
		env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))
		env.uc.vehicleClient = &fakeVehicleClient{err: vehicleservice.ErrVehicleNotFound}

		_, err := env.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrVehicleNotFound)

		// Слот остался в календаре
		assert.Len(t, env.availability.slots, 1)
	})
}

func TestUseCase_Validation(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero client", func(r *Request) { r.ClientID = 0 }, ErrInvalidInput},
		{"negative mechanic", func(r *Request) { r.MechanicID = -1 }, ErrInvalidInput},
		{"zero vehicle", func(r *Request) { r.VehicleID = 0 }, ErrInvalidInput},
		{"malformed time", func(r *Request) { r.StartTime = "9h30" }, ErrInvalidInput},
		{"empty reason", func(r *Request) { r.Reason = "   " }, ErrInvalidInput},
		{"zero date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidDate},
		{"past date", func(r *Request) { r.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) }, ErrInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(newFakeAvailabilityRepo(slotKey(2, date, "09:30")))

			req := validRequest()
			tc.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, env.appointments.created)
		})
	}
}
