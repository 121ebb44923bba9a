package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

func TestBookingWindow_ContainsSlot(t *testing.T) {
	window := DefaultBookingWindow()

	cases := []struct {
		name string
		slot types.TimeString
		want bool
	}{
		{"opening slot", "08:00", true},
		{"mid day slot", "12:30", true},
		{"last slot before close", "17:30", true},
		{"close time itself", "18:00", false},
		{"before opening", "07:30", false},
		{"off the grid", "09:15", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := window.ContainsSlot(tc.slot)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBookingWindow_FullDaySlots(t *testing.T) {
	window := DefaultBookingWindow()

	slots, err := window.FullDaySlots()
	require.NoError(t, err)

	// 08:00-18:00 с шагом 30 минут
	require.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("08:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])
}

func TestDayAvailability_Contains(t *testing.T) {
	day := &DayAvailability{Slots: []types.TimeString{"09:00", "09:30"}}

	assert.True(t, day.Contains("09:30"))
	assert.False(t, day.Contains("10:00"))
	assert.False(t, day.IsEmpty())
	assert.True(t, (&DayAvailability{}).IsEmpty())
}
