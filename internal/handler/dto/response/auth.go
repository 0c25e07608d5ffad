package response

import (
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type StaffResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"isActive"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	Staff *StaffResponse `json:"staff"`
}

func FromStaffView(rm *queries.StaffView) *StaffResponse {
	return &StaffResponse{
		ID:       rm.ID,
		Email:    rm.Email,
		Role:     rm.Role,
		IsActive: rm.IsActive,
	}
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token: result.Token,
		Staff: FromStaffView(result.Staff),
	}
}
