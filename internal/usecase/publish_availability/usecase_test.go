package publish_availability

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

type fakeAvailabilityRepo struct {
	days map[string]map[types.TimeString]struct{}
}

func dayKey(mechanicID int64, date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (f *fakeAvailabilityRepo) day(mechanicID int64, date time.Time) map[types.TimeString]struct{} {
	key := dayKey(mechanicID, date)
	if f.days[key] == nil {
		f.days[key] = make(map[types.TimeString]struct{})
	}
	return f.days[key]
}

func (f *fakeAvailabilityRepo) UpsertSlots(_ context.Context, mechanicID int64, date time.Time, slots []types.TimeString) error {
	day := f.day(mechanicID, date)
	for _, slot := range slots {
		day[slot] = struct{}{}
	}
	return nil
}

func (f *fakeAvailabilityRepo) ReplaceDay(_ context.Context, mechanicID int64, date time.Time, slots []types.TimeString) error {
	f.days[dayKey(mechanicID, date)] = make(map[types.TimeString]struct{})
	return f.UpsertSlots(context.Background(), mechanicID, date, slots)
}

func (f *fakeAvailabilityRepo) ListByMechanic(_ context.Context, mechanicID int64, date *time.Time) ([]*domain.DayAvailability, error) {
	day := f.day(mechanicID, *date)
	slots := make([]types.TimeString, 0, len(day))
	for slot := range day {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })
	return []*domain.DayAvailability{{MechanicID: mechanicID, Date: *date, Slots: slots}}, nil
}

type fakeAppointmentRepo struct {
	active []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByMechanicWithFilter(_ context.Context, _ domain.MechanicAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.active, nil
}

type fakeStaffClient struct {
	err error
}

func (f *fakeStaffClient) GetMechanic(_ context.Context, id int64) (*staffservice.Mechanic, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &staffservice.Mechanic{ID: id, IsActive: true}, nil
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

func TestUseCase_Execute(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	makeUC := func(active ...*domain.Appointment) (*UseCase, *fakeAvailabilityRepo, *fakePublisher) {
		availability := &fakeAvailabilityRepo{days: map[string]map[types.TimeString]struct{}{}}
		publisher := &fakePublisher{}
		uc := NewUseCase(
			availability,
			&fakeAppointmentRepo{active: active},
			&fakeStaffClient{},
			fakeTxManager{},
			publisher,
			fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
			domain.DefaultBookingWindow(),
			nopLogger{},
		)
		return uc, availability, publisher
	}

	t.Run("publishes sorted deduplicated slots", func(t *testing.T) {
		uc, _, publisher := makeUC()

		resp, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"10:00", "09:00", "10:00", "09:30"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, resp.Slots)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.TypeAvailabilityPublished, publisher.published[0].Type)
	})

	t.Run("generates full day on the grid", func(t *testing.T) {
		uc, _, _ := makeUC()

		resp, err := uc.Execute(context.Background(), &Request{
			MechanicID:      2,
			Date:            date,
			GenerateFullDay: true,
		})
		require.NoError(t, err)

		require.Len(t, resp.Slots, 20)
		assert.Equal(t, "08:00", resp.Slots[0])
		assert.Equal(t, "17:30", resp.Slots[len(resp.Slots)-1])
	})

	t.Run("merge keeps existing slots", func(t *testing.T) {
		uc, availability, _ := makeUC()
		require.NoError(t, availability.UpsertSlots(context.Background(), 2, date, []types.TimeString{"08:00"}))

		resp, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"09:00"},
			Merge:      true,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"08:00", "09:00"}, resp.Slots)
	})

	t.Run("replace drops previous day", func(t *testing.T) {
		uc, availability, _ := makeUC()
		require.NoError(t, availability.UpsertSlots(context.Background(), 2, date, []types.TimeString{"08:00"}))

		resp, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"09:00"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"09:00"}, resp.Slots)
	})

	t.Run("rejects slot held by active appointment", func(t *testing.T) {
		uc, availability, _ := makeUC(&domain.Appointment{
			ID:         10,
			MechanicID: 2,
			Date:       date,
			StartTime:  "09:00",
			Status:     domain.StatusRequested,
		})

		_, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"09:00"},
		})
		assert.ErrorIs(t, err, ErrSlotReserved)
		assert.Empty(t, availability.day(2, date))
	})

	t.Run("rejects off-grid slot", func(t *testing.T) {
		uc, _, _ := makeUC()

		_, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"09:10"},
		})
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("rejects slot outside window", func(t *testing.T) {
		uc, _, _ := makeUC()

		_, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"19:00"},
		})
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("rejects past date", func(t *testing.T) {
		uc, _, _ := makeUC()

		_, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Slots:      []types.TimeString{"09:00"},
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("rejects empty slot list without generation", func(t *testing.T) {
		uc, _, _ := makeUC()

		_, err := uc.Execute(context.Background(), &Request{MechanicID: 2, Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown mechanic", func(t *testing.T) {
		uc, _, _ := makeUC()
		uc.staffClient = &fakeStaffClient{err: staffservice.ErrMechanicNotFound}

		_, err := uc.Execute(context.Background(), &Request{
			MechanicID: 2,
			Date:       date,
			Slots:      []types.TimeString{"09:00"},
		})
		assert.ErrorIs(t, err, ErrMechanicNotFound)
	})
}
