package api

import (
	"errors"
	"net/http"
	"strconv"

	"escape-rooms-backend/internal/domain/catalog"
	reqdto "escape-rooms-backend/internal/handler/dto/request"
	resdto "escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/sweeper"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminCommands      commands.AdminCommands
	catalogCommands    commands.CatalogCommands
	reservationQueries queries.ReservationQueries
	statsQueries       queries.StatsQueries
	sweeper            *sweeper.Sweeper
	clock              clock.Clock
	slotsCfg           config.SlotsConfig
}

func NewAdminHandler(
	adminCommands commands.AdminCommands,
	catalogCommands commands.CatalogCommands,
	reservationQueries queries.ReservationQueries,
	statsQueries queries.StatsQueries,
	sw *sweeper.Sweeper,
	clk clock.Clock,
	slotsCfg config.SlotsConfig,
) *AdminHandler {
	return &AdminHandler{
		adminCommands:      adminCommands,
		catalogCommands:    catalogCommands,
		reservationQueries: reservationQueries,
		statsQueries:       statsQueries,
		sweeper:            sw,
		clock:              clk,
		slotsCfg:           slotsCfg,
	}
}

// @Summary List reservations
// @Description List reservations with filters and pagination
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param room_id query string false "Filter by room"
// @Param q query string false "Search customer name, email, or phone"
// @Param date_from query string false "Slot date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Slot date upper bound (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/reservations [get]
func (h *AdminHandler) ListReservations(c *gin.Context) {
	filters, page, err := h.parseListParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.reservationQueries.List(c.Request.Context(), filters, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPagedReservations(result))
}

// @Summary Update reservation status
// @Description Move a reservation through the status machine
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateStatusRequest true "Target status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.UpdateStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.adminCommands.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Reschedule reservation
// @Description Move a reservation to another slot of the same room
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RescheduleRequest true "Destination slot"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id}/schedule [patch]
func (h *AdminHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.RescheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.adminCommands.Reschedule(c.Request.Context(), id, req.Date, req.Time)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update party size
// @Description Grow a reservation's party and reprice it
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdatePartySizeRequest true "New party size"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/reservations/{id}/party-size [patch]
func (h *AdminHandler) UpdatePartySize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.UpdatePartySizeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.adminCommands.UpdatePartySize(c.Request.Context(), id, req.NumPeople)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Reservation stats
// @Description Aggregate reservation counts and paid revenue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatsResponse
// @Failure 401 {object} map[string]string
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	view, err := h.statsQueries.Overview(c.Request.Context(), h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatsView(view))
}

// @Summary Run sweep
// @Description Cancel expired holds immediately instead of waiting for the next tick
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SweepRequest false "Sweep options"
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	var req reqdto.SweepRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	report, err := h.sweeper.RunOnce(c.Request.Context(), req.DryRun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSweepReport(report))
}

// @Summary Generate slots
// @Description Rebuild the slot catalog for every active room
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateSlotsRequest true "Generation horizon"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/slots/generate [post]
func (h *AdminHandler) GenerateSlots(c *gin.Context) {
	var req reqdto.GenerateSlotsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	days := req.Days
	if days == 0 {
		days = h.slotsCfg.HorizonDays
	}

	created, err := h.catalogCommands.GenerateSlots(c.Request.Context(), days)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidHorizon):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid generation horizon",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (h *AdminHandler) parseListParams(c *gin.Context) (queries.ReservationFilters, queries.Page, error) {
	filters := queries.ReservationFilters{
		Status: c.Query("status"),
		Search: c.Query("q"),
	}

	if raw := c.Query("room_id"); raw != "" {
		roomID, err := uuid.Parse(raw)
		if err != nil {
			return filters, queries.Page{}, errors.New("invalid room_id format")
		}
		filters.RoomID = &roomID
	}
	if raw := c.Query("date_from"); raw != "" {
		date, err := catalog.ParseDate(raw)
		if err != nil {
			return filters, queries.Page{}, errors.New("invalid date_from format")
		}
		filters.DateFrom = &date
	}
	if raw := c.Query("date_to"); raw != "" {
		date, err := catalog.ParseDate(raw)
		if err != nil {
			return filters, queries.Page{}, errors.New("invalid date_to format")
		}
		filters.DateTo = &date
	}

	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(queries.DefaultPerPage)))
	return filters, queries.NewPage(pageNum, perPage), nil
}

func (h *AdminHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Time slot not found",
		})
	case errors.Is(err, commands.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown reservation status",
		})
	case errors.Is(err, commands.ErrInvalidDate), errors.Is(err, commands.ErrInvalidTime):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or time format",
		})
	case errors.Is(err, commands.ErrPastDate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Date is in the past",
		})
	case errors.Is(err, commands.ErrTooSoonSameDay):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Too close to the slot time for a same-day change",
		})
	case errors.Is(err, commands.ErrPartySizeOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Party size out of range",
		})
	case errors.Is(err, commands.ErrCannotDecrease):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Party size cannot be decreased",
		})
	case errors.Is(err, commands.ErrAlreadyInStatus):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation already in requested status",
		})
	case errors.Is(err, commands.ErrReservationCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation is cancelled",
		})
	case errors.Is(err, commands.ErrSlotUnavailable), errors.Is(err, commands.ErrSlotNoLongerAvailable):
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
}
