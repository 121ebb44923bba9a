package domain

import "github.com/garagedesk/GMS-AppointmentService/pkg/types"

// Default bookable window
const (
	DefaultOpenTime               types.TimeString = "08:00"
	DefaultCloseTime              types.TimeString = "18:00"
	DefaultSlotGranularityMinutes                  = 30
)

// Business validation constants
const (
	MaxReasonLength        = 200
	MaxDescriptionLength   = 500
	MaxRefusalReasonLength = 500

	MinEstimatedDurationMinutes = 15
	MaxEstimatedDurationMinutes = 480 // 8 часов
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список статусов, из которых нет переходов
// Записи в этих статусах не удерживают слот в календаре
var TerminalStatuses = []AppointmentStatus{
	StatusRefused,
	StatusCancelled,
	StatusPaid,
}

// NonTerminalStatuses список статусов, при которых запись удерживает слот в календаре
// Используется при проверке эксклюзивности слота во время публикации календаря
var NonTerminalStatuses = []AppointmentStatus{
	StatusRequested,
	StatusAccepted,
}

// PendingStatuses список статусов, ожидающих решения механика
var PendingStatuses = []AppointmentStatus{
	StatusRequested,
}
