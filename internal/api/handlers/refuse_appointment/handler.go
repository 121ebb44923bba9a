package refuse_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	refuseAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/refuse_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInput         = "причина отказа обязательна"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgIllegalTransition    = "запись нельзя отклонить в текущем статусе"
)

type Handler struct {
	useCase RefuseAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RefuseAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/refuse
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/refuse - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Механик берется из контекста (через middleware Auth)
	mechanicID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/refuse - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RefuseAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/refuse - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, mechanicID))
	if err != nil {
		switch {
		case errors.Is(err, refuseAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/refuse - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, refuseAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/refuse - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, refuseAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/refuse - Access denied: appointment_id=%d, mechanic_id=%d",
				appointmentID, mechanicID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, refuseAppointment.ErrIllegalTransition):
			h.logger.Warn("PATCH /appointments/{id}/refuse - Illegal transition: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondConflict(w, msgIllegalTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/refuse - Failed to refuse appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/refuse - Appointment refused: appointment_id=%d, mechanic_id=%d",
		appointmentID, mechanicID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
