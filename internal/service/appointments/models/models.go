package models

import (
	"errors"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// AcceptAppointmentRequest запрос механика на принятие записи
type AcceptAppointmentRequest struct {
	MechanicID               int64   `json:"mechanicId"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	EstimatedCost            float64 `json:"estimatedCost"`
}

// GetMechanicAppointmentsRequest запрос на получение записей механика
type GetMechanicAppointmentsRequest struct {
	MechanicID  int64      `json:"mechanicId"`
	Date        *time.Time `json:"date,omitempty"`        // Фильтр по дате (опционально)
	Status      *string    `json:"status,omitempty"`      // Фильтр по статусу (опционально)
	PendingOnly bool       `json:"pendingOnly,omitempty"` // Только ожидающие решения
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMechanicAppointmentsRequest) ToDomainFilter() (domain.MechanicAppointmentsFilter, error) {
	filter := domain.MechanicAppointmentsFilter{
		MechanicID:  r.MechanicID,
		Date:        r.Date,
		PendingOnly: r.PendingOnly,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	MechanicID int64  `json:"mechanicId"`
	Date       string `json:"date"`      // "2024-03-20"
	StartTime  string `json:"startTime"` // "09:00"
	Status     string `json:"status"`

	Reason      string  `json:"reason"`
	Description *string `json:"description,omitempty"`

	// Денормализованный снимок автомобиля
	VehicleBrand        string `json:"vehicleBrand"`
	VehicleModel        string `json:"vehicleModel"`
	VehicleLicensePlate string `json:"vehicleLicensePlate"`
	VehicleYear         *int   `json:"vehicleYear,omitempty"`

	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`
	EstimatedCost            *float64 `json:"estimatedCost,omitempty"`
	RefusalReason            *string  `json:"refusalReason,omitempty"`
	InvoiceNumber            *string  `json:"invoiceNumber,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                       a.ID,
		ClientID:                 a.ClientID,
		MechanicID:               a.MechanicID,
		Date:                     a.Date.Format(domain.DateFormat),
		StartTime:                a.StartTime.String(),
		Status:                   string(a.Status),
		Reason:                   a.Reason,
		Description:              a.Description,
		VehicleBrand:             a.VehicleBrand,
		VehicleModel:             a.VehicleModel,
		VehicleLicensePlate:      a.VehicleLicensePlate,
		VehicleYear:              a.VehicleYear,
		EstimatedDurationMinutes: a.EstimatedDurationMinutes,
		EstimatedCost:            a.EstimatedCost,
		RefusalReason:            a.RefusalReason,
		InvoiceNumber:            a.InvoiceNumber,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusRequested,
		domain.StatusAccepted,
		domain.StatusRefused,
		domain.StatusCancelled,
		domain.StatusPaid,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
