package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"requested to accepted", StatusRequested, StatusAccepted, true},
		{"requested to refused", StatusRequested, StatusRefused, true},
		{"requested to cancelled", StatusRequested, StatusCancelled, true},
		{"requested to paid skips acceptance", StatusRequested, StatusPaid, false},
		{"accepted to paid", StatusAccepted, StatusPaid, true},
		{"accepted to refused", StatusAccepted, StatusRefused, false},
		{"accepted to cancelled", StatusAccepted, StatusCancelled, false},
		{"refused is terminal", StatusRefused, StatusAccepted, false},
		{"cancelled is terminal", StatusCancelled, StatusRequested, false},
		{"paid is terminal", StatusPaid, StatusAccepted, false},
		{"no self transition", StatusRequested, StatusRequested, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusRequested.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRefused.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusPaid.IsTerminal())
}

func TestAppointment_CanBePaid(t *testing.T) {
	cost := 120.50

	t.Run("accepted with estimate", func(t *testing.T) {
		appt := &Appointment{Status: StatusAccepted, EstimatedCost: &cost}
		assert.True(t, appt.CanBePaid())
	})

	t.Run("accepted without estimate", func(t *testing.T) {
		appt := &Appointment{Status: StatusAccepted}
		assert.False(t, appt.CanBePaid())
	})

	t.Run("requested is not payable", func(t *testing.T) {
		appt := &Appointment{Status: StatusRequested, EstimatedCost: &cost}
		assert.False(t, appt.CanBePaid())
	})
}

func TestAppointment_CanBeDecided(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusRequested}).CanBeDecided())
	assert.False(t, (&Appointment{Status: StatusAccepted}).CanBeDecided())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanBeDecided())
}
