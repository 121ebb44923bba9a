package complete_payment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
	invoiceRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/invoice"
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

func (f *fakeAppointmentRepo) MarkPaid(_ context.Context, id int64, invoiceNumber string) error {
	appt := f.appts[id]
	if appt.Status != domain.StatusAccepted {
		return appointmentRepo.ErrStatusConflict
	}
	appt.Status = domain.StatusPaid
	appt.InvoiceNumber = &invoiceNumber
	return nil
}

type fakeInvoiceRepo struct {
	byAppointment map[int64]*domain.Invoice
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if _, ok := f.byAppointment[inv.AppointmentID]; ok {
		return nil, invoiceRepo.ErrDuplicateInvoice
	}
	stored := *inv
	stored.CreatedAt = time.Now()
	f.byAppointment[inv.AppointmentID] = &stored
	return &stored, nil
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

func acceptedAppointment() *domain.Appointment {
	cost := 180.0
	duration := 60
	return &domain.Appointment{
		ID:                       10,
		ClientID:                 1,
		MechanicID:               2,
		Status:                   domain.StatusAccepted,
		EstimatedCost:            &cost,
		EstimatedDurationMinutes: &duration,
	}
}

func TestUseCase_Execute(t *testing.T) {
	makeUC := func(appt *domain.Appointment) (*UseCase, *fakeAppointmentRepo, *fakeInvoiceRepo, *fakePublisher) {
		repo := &fakeAppointmentRepo{appts: map[int64]*domain.Appointment{}}
		if appt != nil {
			repo.appts[appt.ID] = appt
		}
		invoices := &fakeInvoiceRepo{byAppointment: map[int64]*domain.Invoice{}}
		publisher := &fakePublisher{}
		uc := NewUseCase(repo, invoices, fakeTxManager{}, publisher,
			fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}, nopLogger{})
		return uc, repo, invoices, publisher
	}

	t.Run("marks paid and issues invoice together", func(t *testing.T) {
		uc, repo, invoices, publisher := makeUC(acceptedAppointment())

		resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		require.NoError(t, err)

		assert.Equal(t, "paid", resp.Status)
		assert.Equal(t, "paid", resp.InvoiceStatus)
		assert.InDelta(t, 180.0, resp.Amount, 0.001)

		assert.Equal(t, domain.StatusPaid, repo.appts[10].Status)
		require.NotNil(t, repo.appts[10].InvoiceNumber)
		assert.Equal(t, resp.InvoiceNumber, *repo.appts[10].InvoiceNumber)

		inv := invoices.byAppointment[10]
		require.NotNil(t, inv)
		assert.Equal(t, int64(1), inv.ClientID)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.TypeAppointmentPaid, publisher.published[0].Type)
	})

	t.Run("invoice number carries period and random suffix", func(t *testing.T) {
		uc, _, _, _ := makeUC(acceptedAppointment())

		resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		require.NoError(t, err)

		// Сентябрь 2026 -> период 2609, суффикс 8 hex символов
		assert.Regexp(t, regexp.MustCompile(`^INV-2609-[0-9a-f]{8}$`), resp.InvoiceNumber)
	})

	t.Run("requested appointment is not payable", func(t *testing.T) {
		appt := acceptedAppointment()
		appt.Status = domain.StatusRequested
		uc, _, invoices, _ := makeUC(appt)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		assert.ErrorIs(t, err, ErrNotPayable)
		assert.Empty(t, invoices.byAppointment)
	})

	t.Run("accepted without estimate is not payable", func(t *testing.T) {
		appt := acceptedAppointment()
		appt.EstimatedCost = nil
		uc, _, _, _ := makeUC(appt)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		assert.ErrorIs(t, err, ErrNotPayable)
	})

	t.Run("second payment is rejected", func(t *testing.T) {
		uc, _, _, _ := makeUC(acceptedAppointment())

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		assert.ErrorIs(t, err, ErrNotPayable)
	})

	t.Run("duplicate invoice is surfaced", func(t *testing.T) {
		uc, _, invoices, _ := makeUC(acceptedAppointment())
		invoices.byAppointment[10] = &domain.Invoice{Number: "INV-2609-deadbeef", AppointmentID: 10}

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		assert.ErrorIs(t, err, ErrInvoiceExists)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		uc, _, _, _ := makeUC(acceptedAppointment())

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		uc, _, _, _ := makeUC(nil)

		_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Amount: 180})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
