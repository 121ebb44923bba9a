package complete_payment

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// Request уведомление об успешной оплате записи
type Request struct {
	AppointmentID int64
	Amount        float64
}

// Response результат обработки оплаты: запись переведена в paid,
// счет выписан в той же транзакции
type Response struct {
	AppointmentID int64
	ClientID      int64
	Status        string
	InvoiceNumber string
	Amount        float64
	InvoiceStatus string
	CreatedAt     time.Time
}

// FromDomain собирает ответ из записи и выписанного счета
func FromDomain(appt *domain.Appointment, inv *domain.Invoice) *Response {
	return &Response{
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Status:        string(appt.Status),
		InvoiceNumber: inv.Number,
		Amount:        inv.Amount,
		InvoiceStatus: string(inv.Status),
		CreatedAt:     inv.CreatedAt,
	}
}
