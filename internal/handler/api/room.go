package api

import (
	"errors"
	"net/http"

	"escape-rooms-backend/internal/domain/catalog"
	resdto "escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/internal/handler/httperr"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Longest availability window a single request may ask for.
const maxAvailabilityDays = 31

type RoomHandler struct {
	roomQueries queries.RoomQueries
	clock       clock.Clock
}

func NewRoomHandler(roomQueries queries.RoomQueries, clk clock.Clock) *RoomHandler {
	return &RoomHandler{
		roomQueries: roomQueries,
		clock:       clk,
	}
}

// @Summary List rooms
// @Description List all bookable rooms
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	views, err := h.roomQueries.ListRooms(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out := make([]*resdto.RoomResponse, len(views))
	for i, view := range views {
		out[i] = resdto.FromRoomView(view)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get room
// @Description Get a room by ID or slug
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID or slug"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	key := c.Param("id")

	var (
		view *queries.RoomView
		err  error
	)
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		view, err = h.roomQueries.GetRoom(c.Request.Context(), id)
	} else {
		view, err = h.roomQueries.GetRoomBySlug(c.Request.Context(), key)
	}
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary List availability
// @Description List a room's time slots over a date range
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param from query string false "Start date (YYYY-MM-DD), defaults to today"
// @Param to query string false "End date (YYYY-MM-DD), defaults to from+6"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) ListAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	from, to, err := h.parseDateRange(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	// 404 for unknown rooms instead of an empty slot list
	if _, err := h.roomQueries.GetRoom(c.Request.Context(), roomID); err != nil {
		switch {
		case errors.Is(err, queries.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	slots, err := h.roomQueries.ListAvailability(c.Request.Context(), roomID, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(slots))
}

func (h *RoomHandler) parseDateRange(c *gin.Context) (catalog.Date, catalog.Date, error) {
	from := catalog.DateOf(h.clock.Now())
	if raw := c.Query("from"); raw != "" {
		parsed, err := catalog.ParseDate(raw)
		if err != nil {
			return catalog.Date{}, catalog.Date{}, errors.New("invalid 'from' date format")
		}
		from = parsed
	}

	to := from.AddDays(6)
	if raw := c.Query("to"); raw != "" {
		parsed, err := catalog.ParseDate(raw)
		if err != nil {
			return catalog.Date{}, catalog.Date{}, errors.New("invalid 'to' date format")
		}
		to = parsed
	}

	if to.Before(from) {
		return catalog.Date{}, catalog.Date{}, errors.New("'to' must not be before 'from'")
	}
	if from.AddDays(maxAvailabilityDays - 1).Before(to) {
		return catalog.Date{}, catalog.Date{}, errors.New("date range too wide")
	}
	return from, to, nil
}
