package catalog

import (
	"escape-rooms-backend/internal/domain/schedule"

	"github.com/google/uuid"
)

// SlotsForDay builds the active slot set of one room for one day,
// one slot per full hour within the weekday's business hours.
func SlotsForDay(roomID uuid.UUID, date Date) []*TimeSlot {
	hours := schedule.HourlySlotTimes(date.Weekday())
	slots := make([]*TimeSlot, 0, len(hours))
	for _, hour := range hours {
		start, err := NewTimeOfDay(hour, 0)
		if err != nil {
			continue
		}
		slots = append(slots, NewTimeSlot(roomID, date, start))
	}
	return slots
}
