package api

import (
	"errors"
	"net/http"

	reqdto "escape-rooms-backend/internal/handler/dto/request"
	resdto "escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	bookingCommands    commands.BookingCommands
	reservationQueries queries.ReservationQueries
}

func NewReservationHandler(bookingCommands commands.BookingCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		bookingCommands:    bookingCommands,
		reservationQueries: reservationQueries,
	}
}

// @Summary Create hold
// @Description Place a pending hold on a time slot
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateHold(c *gin.Context) {
	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.CreateHold(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidDate), errors.Is(err, commands.ErrInvalidTime):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date or time format",
			})
		case errors.Is(err, commands.ErrPastDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Date is in the past",
			})
		case errors.Is(err, commands.ErrPartySizeOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Party size out of range",
			})
		case errors.Is(err, commands.ErrInvalidCustomer):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid customer details",
			})
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrRoomInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Room is not open for booking",
			})
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Time slot not found",
			})
		case errors.Is(err, commands.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Time slot is no longer available",
			})
		case errors.Is(err, commands.ErrBusy):
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Booking is busy, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}
