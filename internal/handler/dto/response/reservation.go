package response

import (
	"time"

	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"roomId"`
	RoomName      string    `json:"roomName"`
	TimeSlotID    uuid.UUID `json:"timeSlotId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	NumPeople     int       `json:"numPeople"`
	TotalPrice    string    `json:"totalPrice"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type ReservationListResponse struct {
	Items   []*ReservationResponse `json:"items"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"perPage"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            rm.ID,
		RoomID:        rm.RoomID,
		RoomName:      rm.RoomName,
		TimeSlotID:    rm.TimeSlotID,
		Date:          rm.SlotDate,
		Time:          rm.SlotTime,
		CustomerName:  rm.CustomerName,
		CustomerEmail: rm.CustomerEmail,
		CustomerPhone: rm.CustomerPhone,
		NumPeople:     rm.NumPeople,
		TotalPrice:    rm.TotalPrice,
		Status:        rm.Status,
		CreatedAt:     rm.CreatedAt,
		ExpiresAt:     rm.ExpiresAt,
	}
}

func FromPagedReservations(rm *queries.PagedReservations) *ReservationListResponse {
	items := make([]*ReservationResponse, len(rm.Items))
	for i, item := range rm.Items {
		items[i] = FromReservationView(item)
	}
	return &ReservationListResponse{
		Items:   items,
		Total:   rm.Total,
		Page:    rm.Page,
		PerPage: rm.PerPage,
	}
}
