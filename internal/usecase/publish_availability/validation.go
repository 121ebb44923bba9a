package publish_availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// validateRequest проверяет корректность запроса на публикацию
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanic ID must be positive, got %d", ErrInvalidInput, req.MechanicID)
	}

	if err := uc.validateDate(req.Date); err != nil {
		return err
	}

	if !req.GenerateFullDay && len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что день публикации не в прошлом
func (uc *UseCase) validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	return nil
}

// normalizeSlots проверяет каждый слот по рабочему окну, убирает дубликаты
// и возвращает слоты отсортированными по времени
func (uc *UseCase) normalizeSlots(slots []types.TimeString) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{}, len(slots))
	normalized := make([]types.TimeString, 0, len(slots))

	for _, slot := range slots {
		ok, err := uc.window.ContainsSlot(slot)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid time", ErrInvalidSlot, string(slot))
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s is outside window %s-%s or off the %d-minute grid",
				ErrInvalidSlot, slot, uc.window.OpenTime, uc.window.CloseTime, uc.window.GranularityMinutes)
		}

		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		normalized = append(normalized, slot)
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].IsBefore(normalized[j])
	})

	return normalized, nil
}
