package response

import (
	"time"

	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"shortDescription"`
	FullDescription  string    `json:"fullDescription,omitempty"`
	BasePrice        string    `json:"basePrice"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SlotResponse struct {
	ID     uuid.UUID `json:"id"`
	RoomID uuid.UUID `json:"roomId"`
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Status string    `json:"status"`
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:               rm.ID,
		Name:             rm.Name,
		Slug:             rm.Slug,
		ShortDescription: rm.ShortDescription,
		FullDescription:  rm.FullDescription,
		BasePrice:        rm.BasePrice,
		IsActive:         rm.IsActive,
		CreatedAt:        rm.CreatedAt,
	}
}

func FromSlotViews(rms []*queries.SlotView) []*SlotResponse {
	out := make([]*SlotResponse, len(rms))
	for i, rm := range rms {
		out[i] = &SlotResponse{
			ID:     rm.ID,
			RoomID: rm.RoomID,
			Date:   rm.Date,
			Time:   rm.Time,
			Status: rm.Status,
		}
	}
	return out
}
