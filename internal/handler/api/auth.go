package api

import (
	"errors"
	"net/http"

	reqdto "escape-rooms-backend/internal/handler/dto/request"
	resdto "escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/internal/handler/middleware"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	staffQueries queries.StaffQueries
}

func NewAuthHandler(authCommands commands.AuthCommands, staffQueries queries.StaffQueries) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		staffQueries: staffQueries,
	}
}

// @Summary Staff login
// @Description Authenticate a staff user and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrStaffInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is deactivated",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Current staff
// @Description Get the authenticated staff user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StaffResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.staffQueries.GetCurrentStaff(c.Request.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrStaffNotFound), errors.Is(err, queries.ErrStaffInactive):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStaffView(view))
}
