package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomName      string    `json:"room_name"`
	TimeSlotID    uuid.UUID `json:"time_slot_id"`
	SlotDate      string    `json:"slot_date"`
	SlotTime      string    `json:"slot_time"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	NumPeople     int       `json:"num_people"`
	TotalPrice    string    `json:"total_price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type RoomView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	FullDescription  string    `json:"full_description,omitempty"`
	BasePrice        string    `json:"base_price"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type SlotView struct {
	ID     uuid.UUID `json:"id"`
	RoomID uuid.UUID `json:"room_id"`
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Status string    `json:"status"`
}

type StatsView struct {
	TotalReservations int64  `json:"total_reservations"`
	Pending           int64  `json:"pending"`
	Paid              int64  `json:"paid"`
	Cancelled         int64  `json:"cancelled"`
	Revenue           string `json:"revenue"`
	Today             int64  `json:"today"`
	ThisWeek          int64  `json:"this_week"`
	ThisMonth         int64  `json:"this_month"`
}

type StaffView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
