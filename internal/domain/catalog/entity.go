package catalog

import (
	"time"

	"github.com/google/uuid"
)

type TimeSlot struct {
	id        uuid.UUID
	roomID    uuid.UUID
	date      Date
	startTime TimeOfDay
	status    SlotStatus
	createdAt time.Time
}

func NewTimeSlot(roomID uuid.UUID, date Date, startTime TimeOfDay) *TimeSlot {
	return &TimeSlot{
		id:        uuid.New(),
		roomID:    roomID,
		date:      date,
		startTime: startTime,
		status:    SlotStatusActive,
	}
}

func ReconstructTimeSlot(
	id, roomID uuid.UUID,
	date Date,
	startTime TimeOfDay,
	status SlotStatus,
	createdAt time.Time,
) *TimeSlot {
	return &TimeSlot{
		id:        id,
		roomID:    roomID,
		date:      date,
		startTime: startTime,
		status:    status,
		createdAt: createdAt,
	}
}

func (s *TimeSlot) ID() uuid.UUID        { return s.id }
func (s *TimeSlot) RoomID() uuid.UUID    { return s.roomID }
func (s *TimeSlot) Date() Date           { return s.date }
func (s *TimeSlot) StartTime() TimeOfDay { return s.startTime }
func (s *TimeSlot) Status() SlotStatus   { return s.status }
func (s *TimeSlot) CreatedAt() time.Time { return s.createdAt }

func (s *TimeSlot) IsAvailable() bool {
	return s.status == SlotStatusActive
}

// StartAt returns the absolute session start in the given location.
func (s *TimeSlot) StartAt(loc *time.Location) time.Time {
	return s.startTime.At(s.date, loc)
}
