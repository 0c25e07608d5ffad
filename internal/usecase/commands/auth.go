package commands

import (
	"context"
	"log/slog"

	"escape-rooms-backend/internal/domain/staff"
	reqdto "escape-rooms-backend/internal/handler/dto/request"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/errs"
	"escape-rooms-backend/internal/pkg/jwt"
	"escape-rooms-backend/internal/pkg/password"
	"escape-rooms-backend/internal/usecase/queries"
	"escape-rooms-backend/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrStaffInactive      = errs.New("staff user inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	Token string
	Staff *queries.StaffView
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.StaffReadStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.StaffReadStore, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	email, err := staff.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	view, hash, err := a.readStore.FindByEmail(ctx, email.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !view.IsActive {
		return nil, ErrStaffInactive
	}

	if err := password.ComparePassword(hash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := staff.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Staff().UpdateLastLogin(ctx, view.ID, a.clock.Now())
	})
	if err != nil {
		// Login already succeeded; a failed last_login write is not fatal
		slog.Warn("failed to update last login", "staff_id", view.ID.String(), "error", err.Error())
	}

	return &LoginResult{Token: token, Staff: view}, nil
}
