//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"escape-rooms-backend/internal/handler/dto/request"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/jwt"
	"escape-rooms-backend/internal/pkg/password"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/internal/usecase/queries"
	"escape-rooms-backend/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staffReadStoreStub struct {
	byEmail map[string]struct {
		view *queries.StaffView
		hash string
	}
}

func newStaffReadStoreStub() *staffReadStoreStub {
	return &staffReadStoreStub{byEmail: make(map[string]struct {
		view *queries.StaffView
		hash string
	})}
}

func (s *staffReadStoreStub) add(view *queries.StaffView, hash string) {
	s.byEmail[view.Email] = struct {
		view *queries.StaffView
		hash string
	}{view: view, hash: hash}
}

func (s *staffReadStoreStub) FindByID(_ context.Context, id uuid.UUID) (*queries.StaffView, error) {
	for _, entry := range s.byEmail {
		if entry.view.ID == id {
			return entry.view, nil
		}
	}
	return nil, infra.WrapRepoErr("staff not found", nil, infra.KindNotFound)
}

func (s *staffReadStoreStub) FindByEmail(_ context.Context, email string) (*queries.StaffView, string, error) {
	entry, ok := s.byEmail[email]
	if !ok {
		return nil, "", infra.WrapRepoErr("staff not found", nil, infra.KindNotFound)
	}
	return entry.view, entry.hash, nil
}

func TestAuthCommands_Login(t *testing.T) {
	newFixture := func(t *testing.T, active bool) (*staffReadStoreStub, *jwt.Service, commands.AuthCommands, uuid.UUID) {
		t.Helper()
		store := newStaffReadStoreStub()
		staffID := uuid.New()
		hash, err := password.HashPassword("secret-password")
		require.NoError(t, err)
		store.add(&queries.StaffView{
			ID:       staffID,
			Email:    "manager@example.com",
			Role:     "manager",
			IsActive: active,
		}, hash)

		jwtService := jwt.NewService("test-secret", time.Hour)
		cmds := commands.NewAuthCommands(
			fakes.NewUoW(fakes.NewState()),
			store,
			jwtService,
			clock.NewMockClock(testNow),
		)
		return store, jwtService, cmds, staffID
	}

	t.Run("正常系: 正しい資格情報で検証可能なトークンが返る", func(t *testing.T) {
		_, jwtService, cmds, staffID := newFixture(t, true)

		result, err := cmds.Login(context.Background(), request.LoginRequest{
			Email:    "manager@example.com",
			Password: "secret-password",
		})
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, staffID, claims.StaffID)
		assert.Equal(t, "manager", claims.Role)
		assert.Equal(t, staffID, result.Staff.ID)
	})

	t.Run("正常系: メールアドレスは大文字小文字を区別しない", func(t *testing.T) {
		_, _, cmds, _ := newFixture(t, true)

		_, err := cmds.Login(context.Background(), request.LoginRequest{
			Email:    "Manager@Example.COM",
			Password: "secret-password",
		})
		require.NoError(t, err)
	})

	t.Run("異常系: 未知のメールアドレス", func(t *testing.T) {
		_, _, cmds, _ := newFixture(t, true)

		_, err := cmds.Login(context.Background(), request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret-password",
		})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("異常系: パスワード不一致", func(t *testing.T) {
		_, _, cmds, _ := newFixture(t, true)

		_, err := cmds.Login(context.Background(), request.LoginRequest{
			Email:    "manager@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("異常系: 無効化されたスタッフ", func(t *testing.T) {
		_, _, cmds, _ := newFixture(t, false)

		_, err := cmds.Login(context.Background(), request.LoginRequest{
			Email:    "manager@example.com",
			Password: "secret-password",
		})
		assert.ErrorIs(t, err, commands.ErrStaffInactive)
	})
}
