package invoices

import (
	"context"
	"errors"
	"fmt"

	invoiceRepo "github.com/garagedesk/GMS-AppointmentService/internal/infra/storage/invoice"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/invoices/models"
)

// Service сервис чтения счетов
// Счета создаются только usecase завершения оплаты
type Service struct {
	invoiceRepo InvoiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(invoiceRepo InvoiceRepository, logger Logger) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// GetByNumber получает счет по номеру
// Счет виден только его клиенту
func (s *Service) GetByNumber(ctx context.Context, number string, userID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("GetByNumber: fetching invoice number=%s for user=%d", number, userID)

	if number == "" {
		return nil, fmt.Errorf("%w: number is required", ErrInvalidInput)
	}

	inv, err := s.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("GetByNumber: invoice number=%s not found", number)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("GetByNumber: repository error for invoice number=%s: %v", number, err)
		return nil, fmt.Errorf("%w: GetByNumber - repository error: %v", ErrInternal, err)
	}

	if inv.ClientID != userID {
		s.logger.Warn("GetByNumber: access denied for user=%d to invoice number=%s", userID, number)
		return nil, ErrAccessDenied
	}

	return models.FromDomainInvoice(inv), nil
}

// ListByClient получает счета клиента, сначала новые
func (s *Service) ListByClient(ctx context.Context, clientID int64) (*models.InvoiceListResponse, error) {
	s.logger.Info("ListByClient: fetching invoices for client=%d", clientID)

	if clientID <= 0 {
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	invoices, err := s.invoiceRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d invoices for client=%d", len(invoices), clientID)
	return models.FromDomainInvoiceList(invoices), nil
}
