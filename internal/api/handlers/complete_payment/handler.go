package complete_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	completePayment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/complete_payment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAmount        = "некорректная сумма оплаты"
	msgNotFound             = "запись не найдена"
	msgNotPayable           = "запись нельзя оплатить в текущем статусе"
	msgInvoiceExists        = "счет на запись уже выписан"
)

type Handler struct {
	useCase CompletePaymentUseCase
	logger  Logger
}

func NewHandler(useCase CompletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/payment - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CompletePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &completePayment.Request{
		AppointmentID: appointmentID,
		Amount:        req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/payment - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, completePayment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/payment - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completePayment.ErrNotPayable):
			h.logger.Warn("POST /appointments/{id}/payment - Not payable: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondConflict(w, msgNotPayable)

		case errors.Is(err, completePayment.ErrInvoiceExists):
			h.logger.Warn("POST /appointments/{id}/payment - Invoice exists: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInvoiceExists)

		default:
			h.logger.Error("POST /appointments/{id}/payment - Failed to complete payment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/payment - Payment completed: appointment_id=%d, invoice=%s",
		appointmentID, resp.InvoiceNumber)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
