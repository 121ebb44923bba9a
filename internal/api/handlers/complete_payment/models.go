package complete_payment

import (
	"time"

	completePayment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/complete_payment"
)

// CompletePaymentRequest HTTP request model, присылается платежной системой
type CompletePaymentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentResultResponse HTTP response model
type PaymentResultResponse struct {
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Amount        float64 `json:"amount"`
	InvoiceStatus string  `json:"invoiceStatus"`
	CreatedAt     string  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completePayment.Response) *PaymentResultResponse {
	return &PaymentResultResponse{
		AppointmentID: resp.AppointmentID,
		Status:        resp.Status,
		InvoiceNumber: resp.InvoiceNumber,
		Amount:        resp.Amount,
		InvoiceStatus: resp.InvoiceStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
