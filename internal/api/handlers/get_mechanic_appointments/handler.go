package get_mechanic_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidMechanicID = "некорректный ID механика"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mechanics/{mechanicId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mechanicIDStr := vars["mechanicId"]

	mechanicID, err := strconv.ParseInt(mechanicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /mechanics/{mechanicId}/appointments - Invalid mechanic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMechanicID)
		return
	}

	// Свой план может смотреть только сам механик
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /mechanics/{mechanicId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != mechanicID {
		h.logger.Warn("GET /mechanics/{mechanicId}/appointments - Access denied: mechanic_id=%d, user_id=%d",
			mechanicID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetMechanicAppointmentsRequest{
		MechanicID:  mechanicID,
		PendingOnly: r.URL.Query().Get("pending") == "true",
	}

	// Фильтр по дате (опционально)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, parseErr := time.Parse(domain.DateFormat, dateStr)
		if parseErr != nil {
			h.logger.Warn("GET /mechanics/{mechanicId}/appointments - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.Date = &date
	}

	// Фильтр по статусу (опционально)
	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	result, err := h.service.ListByMechanic(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /mechanics/{mechanicId}/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}

		h.logger.Error("GET /mechanics/{mechanicId}/appointments - Failed to get appointments: mechanic_id=%d, error=%v",
			mechanicID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mechanics/{mechanicId}/appointments - Appointments retrieved: mechanic_id=%d, count=%d",
		mechanicID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
