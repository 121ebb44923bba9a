package domain

import "time"

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice represents a billable invoice derived from a paid appointment
// Immutable after creation except for Status
type Invoice struct {
	Number        string // Человекочитаемый номер, например "INV-2409-a1b2c3d4"
	AppointmentID int64
	ClientID      int64
	Amount        float64
	Status        InvoiceStatus
	CreatedAt     time.Time
}

// IsPaid returns true if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
