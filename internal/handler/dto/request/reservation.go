package request

import (
	"escape-rooms-backend/internal/domain/reservation"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Name      string    `json:"customer_name" binding:"required"`
	Email     string    `json:"customer_email" binding:"required"`
	Phone     string    `json:"customer_phone" binding:"required"`
	NumPeople int       `json:"num_people" binding:"required"`
}

func (r CreateHoldRequest) ToCustomer() (reservation.Customer, error) {
	return reservation.NewCustomer(r.Name, r.Email, r.Phone)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type UpdatePartySizeRequest struct {
	NumPeople int `json:"num_people" binding:"required"`
}

type SweepRequest struct {
	DryRun bool `json:"dry_run"`
}
