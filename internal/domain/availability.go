package domain

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// DayAvailability published open slots of one mechanic for one date
// Slot times are kept sorted ascending for deterministic listing
type DayAvailability struct {
	MechanicID int64
	Date       time.Time
	Slots      []types.TimeString
}

// IsEmpty returns true if the mechanic has no open slots left on this date
func (d *DayAvailability) IsEmpty() bool {
	return len(d.Slots) == 0
}

// Contains returns true if the slot time is currently open
func (d *DayAvailability) Contains(t types.TimeString) bool {
	for _, slot := range d.Slots {
		if slot == t {
			return true
		}
	}
	return false
}

// BookingWindow часы, внутри которых механик может публиковать слоты
type BookingWindow struct {
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	GranularityMinutes int
}

// DefaultBookingWindow returns the standard garage window (08:00-18:00, 30 min grid)
func DefaultBookingWindow() BookingWindow {
	return BookingWindow{
		OpenTime:           DefaultOpenTime,
		CloseTime:          DefaultCloseTime,
		GranularityMinutes: DefaultSlotGranularityMinutes,
	}
}

// ContainsSlot returns true if the slot starts inside the window and lies on the grid
func (w BookingWindow) ContainsSlot(t types.TimeString) (bool, error) {
	onGrid, err := t.OnGrid(w.GranularityMinutes)
	if err != nil {
		return false, err
	}
	if !onGrid {
		return false, nil
	}
	return !t.IsBefore(w.OpenTime) && t.IsBefore(w.CloseTime), nil
}

// FullDaySlots generates every slot of the window on the configured grid
func (w BookingWindow) FullDaySlots() ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := w.OpenTime

	for current.IsBefore(w.CloseTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(w.GranularityMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return slots, nil
}
