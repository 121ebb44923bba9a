package get_invoice

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/invoices"
)

const (
	msgInvalidInvoiceNumber = "некорректный номер счета"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "счет не найден"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/invoices/{invoiceNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["invoiceNumber"]

	if number == "" {
		h.logger.Warn("GET /invoices/{invoiceNumber} - Empty invoice number")
		handlers.RespondBadRequest(w, msgInvalidInvoiceNumber)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /invoices/{invoiceNumber} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем счет (сервис сам проверит права доступа)
	invoice, err := h.service.GetByNumber(r.Context(), number, userID)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("GET /invoices/{invoiceNumber} - Invalid number: %q", number)
			handlers.RespondBadRequest(w, msgInvalidInvoiceNumber)

		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("GET /invoices/{invoiceNumber} - Invoice not found: number=%s", number)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("GET /invoices/{invoiceNumber} - Access denied: number=%s, user_id=%d", number, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /invoices/{invoiceNumber} - Failed to get invoice: number=%s, error=%v", number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, invoice)
}
