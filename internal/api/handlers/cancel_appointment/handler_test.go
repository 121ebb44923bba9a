package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/internal/api/middleware"
	cancelAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/cancel_appointment"
)

type fakeUseCase struct {
	resp *cancelAppointment.Response
	err  error

	gotReq *cancelAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, useCase *fakeUseCase, target, userID string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/appointments/{appointmentId}/cancel",
		NewHandler(useCase, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_Handle(t *testing.T) {
	t.Run("cancels appointment", func(t *testing.T) {
		useCase := &fakeUseCase{resp: &cancelAppointment.Response{
			ID:         10,
			ClientID:   1,
			MechanicID: 2,
			Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			StartTime:  "09:30",
			Status:     "cancelled",
		}}

		recorder := doRequest(t, useCase, "/appointments/10/cancel", "1")

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, useCase.gotReq)
		assert.Equal(t, int64(10), useCase.gotReq.AppointmentID)
		assert.Equal(t, int64(1), useCase.gotReq.ClientID)
		assert.JSONEq(t, `{
			"id": 10,
			"clientId": 1,
			"mechanicId": 2,
			"date": "2026-09-15",
			"startTime": "09:30",
			"status": "cancelled"
		}`, recorder.Body.String())
	})

	t.Run("requires auth header", func(t *testing.T) {
		recorder := doRequest(t, &fakeUseCase{}, "/appointments/10/cancel", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("rejects malformed appointment id", func(t *testing.T) {
		recorder := doRequest(t, &fakeUseCase{}, "/appointments/abc/cancel", "1")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("maps access denied to 403", func(t *testing.T) {
		useCase := &fakeUseCase{err: cancelAppointment.ErrAccessDenied}
		recorder := doRequest(t, useCase, "/appointments/10/cancel", "99")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("maps illegal transition to 409", func(t *testing.T) {
		useCase := &fakeUseCase{err: cancelAppointment.ErrIllegalTransition}
		recorder := doRequest(t, useCase, "/appointments/10/cancel", "1")
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		useCase := &fakeUseCase{err: cancelAppointment.ErrAppointmentNotFound}
		recorder := doRequest(t, useCase, "/appointments/10/cancel", "1")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
