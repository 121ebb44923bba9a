package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/service/availability"
)

const (
	msgInvalidMechanicID = "некорректный ID механика"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mechanics/{mechanicId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mechanicIDStr := vars["mechanicId"]

	mechanicID, err := strconv.ParseInt(mechanicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /mechanics/{mechanicId}/availability - Invalid mechanic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMechanicID)
		return
	}

	// Фильтр по дате (опционально)
	var datePtr *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, parseErr := time.Parse(domain.DateFormat, dateStr)
		if parseErr != nil {
			h.logger.Warn("GET /mechanics/{mechanicId}/availability - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		datePtr = &date
	}

	result, err := h.service.List(r.Context(), mechanicID, datePtr)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /mechanics/{mechanicId}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMechanicID)
			return
		}

		h.logger.Error("GET /mechanics/{mechanicId}/availability - Failed to get availability: mechanic_id=%d, error=%v",
			mechanicID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mechanics/{mechanicId}/availability - Availability retrieved: mechanic_id=%d, days=%d",
		mechanicID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
