//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"escape-rooms-backend/internal/handler/api"
	reqdto "escape-rooms-backend/internal/handler/dto/request"
	resdto "escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/internal/pkg/errs"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"
	"escape-rooms-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubBookingCommands struct {
	view *queries.ReservationView
	err  error
}

func (s *stubBookingCommands) CreateHold(_ context.Context, _ reqdto.CreateHoldRequest) (*queries.ReservationView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

type stubReservationQueries struct {
	view *queries.ReservationView
	err  error
}

func (s *stubReservationQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.ReservationView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubReservationQueries) List(context.Context, queries.ReservationFilters, queries.Page) (*queries.PagedReservations, error) {
	return &queries.PagedReservations{}, nil
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	booking    *stubBookingCommands
	resQueries *stubReservationQueries
	sampleView *queries.ReservationView
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.sampleView = &queries.ReservationView{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		RoomName:      "The Vault",
		TimeSlotID:    uuid.New(),
		SlotDate:      "2026-09-14",
		SlotTime:      "15:00",
		CustomerName:  "Alice Carter",
		CustomerEmail: "alice@example.com",
		CustomerPhone: "+34600111222",
		NumPeople:     3,
		TotalPrice:    "90.00",
		Status:        "pending",
		CreatedAt:     time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		ExpiresAt:     time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
	}
	s.booking = &stubBookingCommands{view: s.sampleView}
	s.resQueries = &stubReservationQueries{view: s.sampleView}

	handler := api.NewReservationHandler(s.booking, s.resQueries)
	s.router.POST("/reservations", handler.CreateHold)
	s.router.GET("/reservations/:id", handler.GetReservation)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func validHoldBody() map[string]any {
	return map[string]any{
		"room_id":        uuid.New().String(),
		"date":           "2026-09-14",
		"time":           "15:00",
		"customer_name":  "Alice Carter",
		"customer_email": "alice@example.com",
		"customer_phone": "+34600111222",
		"num_people":     3,
	}
}

func (s *ReservationHandlerTestSuite) TestCreateHold() {
	url := "/reservations"

	s.Run("success: returns 201 Created for valid request", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validHoldBody(), "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(s.sampleView.ID, body.ID)
		s.Equal("pending", body.Status)
		s.Equal("90.00", body.TotalPrice)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"room_id", "date", "time", "customer_name", "customer_email", "customer_phone", "num_people"} {
			s.Run("missing "+field, func() {
				body := validHoldBody()
				delete(body, field)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "past date",
				commandsError:  commands.ErrPastDate,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "past",
			},
			{
				name:           "room not found",
				commandsError:  commands.ErrRoomNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room not found",
			},
			{
				name:           "room inactive",
				commandsError:  commands.ErrRoomInactive,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not open",
			},
			{
				name:           "slot not found",
				commandsError:  commands.ErrSlotNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Time slot not found",
			},
			{
				name:           "slot taken",
				commandsError:  commands.ErrSlotUnavailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "no longer available",
			},
			{
				name:           "internal error",
				commandsError:  errs.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.booking.err = tc.commandsError
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validHoldBody(), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
		s.booking.err = nil
	})

	s.Run("error: 503 with Retry-After when booking is busy", func() {
		s.booking.err = commands.ErrBusy
		defer func() { s.booking.err = nil }()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validHoldBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "busy")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: returns 200 OK with the reservation", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+s.sampleView.ID.String(), nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.sampleView.ID, body.ID)
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.resQueries.err = queries.ErrReservationNotFound
		defer func() { s.resQueries.err = nil }()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+uuid.New().String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}
