package request_appointment

import (
	"errors"
	"net/http"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/handlers"
	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	requestAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/request_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные записи"
	msgInvalidDate        = "дата записи в прошлом"
	msgMechanicNotFound   = "механик не найден"
	msgMechanicInactive   = "механик не принимает записи"
	msgVehicleNotFound    = "автомобиль не найден"
	msgSlotNotAvailable   = "выбранный слот недоступен"
)

type Handler struct {
	useCase RequestAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RequestAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Клиент берется из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RequestAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, requestAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, requestAppointment.ErrMechanicNotFound):
			h.logger.Warn("POST /appointments - Mechanic not found: %v", err)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, requestAppointment.ErrMechanicInactive):
			h.logger.Warn("POST /appointments - Mechanic inactive: %v", err)
			handlers.RespondBadRequest(w, msgMechanicInactive)

		case errors.Is(err, requestAppointment.ErrVehicleNotFound):
			h.logger.Warn("POST /appointments - Vehicle not found: %v", err)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, requestAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: %v", err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, mechanic_id=%d",
		resp.ID, resp.ClientID, resp.MechanicID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
