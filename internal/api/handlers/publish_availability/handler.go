package publish_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	publishAvailability "github.com/garagedesk/GMS-AppointmentService/internal/usecase/publish_availability"
)

const (
	msgInvalidMechanicID  = "некорректный ID механика"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные публикации"
	msgInvalidDate        = "дата публикации в прошлом"
	msgInvalidSlot        = "слот вне рабочего окна или не на сетке"
	msgMechanicNotFound   = "механик не найден"
	msgSlotReserved       = "слот удерживается активной записью"
)

type Handler struct {
	useCase PublishAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase PublishAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/mechanics/{mechanicId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mechanicIDStr := vars["mechanicId"]

	mechanicID, err := strconv.ParseInt(mechanicIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Invalid mechanic ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMechanicID)
		return
	}

	// Публиковать календарь может только сам механик
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != mechanicID {
		h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Access denied: mechanic_id=%d, user_id=%d",
			mechanicID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req PublishAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(mechanicID)
	if err != nil {
		h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, publishAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, publishAvailability.ErrInvalidDate):
			h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, publishAvailability.ErrInvalidSlot):
			h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, publishAvailability.ErrMechanicNotFound):
			h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Mechanic not found: mechanic_id=%d", mechanicID)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, publishAvailability.ErrSlotReserved):
			h.logger.Warn("PUT /mechanics/{mechanicId}/availability - Slot reserved: %v", err)
			handlers.RespondConflict(w, msgSlotReserved)

		default:
			h.logger.Error("PUT /mechanics/{mechanicId}/availability - Failed to publish availability: mechanic_id=%d, error=%v",
				mechanicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /mechanics/{mechanicId}/availability - Availability published: mechanic_id=%d, date=%s, slots=%d",
		mechanicID, resp.Date.Format(domain.DateFormat), len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
