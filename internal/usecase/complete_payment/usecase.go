package complete_payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	appointmentRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/appointment"
	invoiceRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/invoice"
)

// invoiceSuffixBytes задает длину случайного суффикса номера счета.
// 4 байта дают 8 hex-символов, перебор номеров становится бессмысленным.
const invoiceSuffixBytes = 4

// UseCase реализует обработку успешной оплаты: переводит запись в paid
// и выписывает счет в одной транзакции. Либо происходит и то и другое,
// либо ничего.
type UseCase struct {
	appointmentRepository AppointmentRepository
	invoiceRepository     InvoiceRepository
	txManager             TransactionManager
	publisher             EventPublisher
	timeProvider          TimeProvider
	logger                Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepository AppointmentRepository,
	invoiceRepository InvoiceRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepository: appointmentRepository,
		invoiceRepository:     invoiceRepository,
		txManager:             txManager,
		publisher:             publisher,
		timeProvider:          timeProvider,
		logger:                logger,
	}
}

// Execute обрабатывает уведомление платежной системы об успешной оплате
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	var (
		appt    *domain.Appointment
		invoice *domain.Invoice
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var getErr error
		appt, getErr = uc.appointmentRepository.GetByID(txCtx, req.AppointmentID)
		if getErr != nil {
			if errors.Is(getErr, appointmentRepo.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrAppointmentNotFound, req.AppointmentID)
			}
			return fmt.Errorf("%w: Execute - failed to get appointment %d: %v", ErrInternal, req.AppointmentID, getErr)
		}

		if !appt.CanBePaid() {
			return fmt.Errorf("%w: appointment %d in status %s", ErrNotPayable, appt.ID, appt.Status)
		}

		number, numErr := uc.generateInvoiceNumber()
		if numErr != nil {
			return fmt.Errorf("%w: Execute - failed to generate invoice number: %v", ErrInternal, numErr)
		}

		var createErr error
		invoice, createErr = uc.invoiceRepository.Create(txCtx, &domain.Invoice{
			Number:        number,
			AppointmentID: appt.ID,
			ClientID:      appt.ClientID,
			Amount:        req.Amount,
			Status:        domain.InvoiceStatusPaid,
		})
		if createErr != nil {
			if errors.Is(createErr, invoiceRepo.ErrDuplicateInvoice) {
				return fmt.Errorf("%w: appointment %d", ErrInvoiceExists, appt.ID)
			}
			return fmt.Errorf("%w: Execute - failed to create invoice: %v", ErrInternal, createErr)
		}

		if markErr := uc.appointmentRepository.MarkPaid(txCtx, appt.ID, invoice.Number); markErr != nil {
			if errors.Is(markErr, appointmentRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: appointment %d changed status concurrently", ErrNotPayable, appt.ID)
			}
			return fmt.Errorf("%w: Execute - failed to mark appointment %d as paid: %v", ErrInternal, appt.ID, markErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	oldStatus := appt.Status
	appt.Status = domain.StatusPaid
	appt.InvoiceNumber = &invoice.Number

	uc.logger.Info("complete_payment: appointment %d paid, invoice %s issued for %.2f",
		appt.ID, invoice.Number, invoice.Amount)

	uc.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentPaid, appt, oldStatus))

	return FromDomain(appt, invoice), nil
}

// generateInvoiceNumber строит номер счета вида INV-YYMM-xxxxxxxx.
// Суффикс берется из crypto/rand, а не из счетчика, чтобы номер
// нельзя было угадать по соседнему счету.
func (uc *UseCase) generateInvoiceNumber() (string, error) {
	buf := make([]byte, invoiceSuffixBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	period := uc.timeProvider.Now().Format("0601")

	return fmt.Sprintf("INV-%s-%s", period, hex.EncodeToString(buf)), nil
}
