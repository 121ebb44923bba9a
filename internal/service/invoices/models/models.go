package models

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// InvoiceResponse ответ с данными счета
type InvoiceResponse struct {
	Number        string    `json:"number"`
	AppointmentID int64     `json:"appointmentId"`
	ClientID      int64     `json:"clientId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InvoiceListResponse ответ со списком счетов
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// FromDomainInvoice конвертирует domain модель в DTO
func FromDomainInvoice(inv *domain.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}

	return &InvoiceResponse{
		Number:        inv.Number,
		AppointmentID: inv.AppointmentID,
		ClientID:      inv.ClientID,
		Amount:        inv.Amount,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
	}
}

// FromDomainInvoiceList конвертирует список domain моделей в DTO
func FromDomainInvoiceList(invoices []*domain.Invoice) *InvoiceListResponse {
	resp := &InvoiceListResponse{
		Invoices: make([]InvoiceResponse, len(invoices)),
	}

	for i, inv := range invoices {
		if invResp := FromDomainInvoice(inv); invResp != nil {
			resp.Invoices[i] = *invResp
		}
	}

	return resp
}
