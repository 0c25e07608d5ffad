//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"escape-rooms-backend/internal/domain/staff"
	"escape-rooms-backend/internal/handler/dto/request"
	"escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/tests/common/authtest"
	"escape-rooms-backend/tests/common/dbtest"
	"escape-rooms-backend/tests/common/httptest"
	"escape-rooms-backend/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL          = "/api/auth/login"
	meURL             = "/api/auth/me"
	sweepURL          = "/api/admin/sweep"
	generateURL       = "/api/admin/slots/generate"
	adminStatsURL     = "/api/admin/stats"
	testStaffPassword = "password123"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper

	adminID   uuid.UUID
	managerID uuid.UUID
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用スタッフを作成
	s.adminID = dbtest.CreateTestStaff(s.T(), s.DB, "admin@example.com", string(staff.RoleAdmin), testStaffPassword)
	s.managerID = dbtest.CreateTestStaff(s.T(), s.DB, "manager@example.com", string(staff.RoleManager), testStaffPassword)

	inactiveID := dbtest.CreateTestStaff(s.T(), s.DB, "inactive@example.com", string(staff.RoleManager), testStaffPassword)
	dbtest.DeactivateStaff(s.T(), s.DB, inactiveID)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			email:          "admin@example.com",
			password:       testStaffPassword,
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "存在しないスタッフ",
			email:          "nonexistent@example.com",
			password:       testStaffPassword,
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないスタッフでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			email:          "admin@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "非アクティブスタッフ",
			email:          "inactive@example.com",
			password:       testStaffPassword,
			expectedStatus: http.StatusForbidden,
			description:    "非アクティブスタッフはログインできないこと",
		},
		{
			name:           "空のメールアドレス",
			email:          "",
			password:       testStaffPassword,
			expectedStatus: http.StatusBadRequest,
			description:    "空のメールアドレスは拒否されること",
		},
		{
			name:           "短すぎるパスワード",
			email:          "admin@example.com",
			password:       "short",
			expectedStatus: http.StatusBadRequest,
			description:    "8文字未満のパスワードは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var res response.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
				require.NotEmpty(t, res.Token)
				require.NotNil(t, res.Staff)
				require.Equal(t, tt.email, res.Staff.Email)
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("正常系: トークンで自分の情報を取得できる", func() {
		t := s.T()

		token := authtest.LoginStaff(t, s.Router, "manager@example.com", testStaffPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var res response.StaffResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "manager@example.com", res.Email)
		require.Equal(t, string(staff.RoleManager), res.Role)
		require.True(t, res.IsActive)
	})

	s.Run("異常系: トークンなしでは401", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("異常系: 期限切れトークンでは401", func() {
		t := s.T()

		expired := s.jwtHelper.CreateExpiredToken(t, s.managerID, staff.RoleManager)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestAdminRoleGating() {
	s.Run("管理系エンドポイントはトークン必須", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminStatsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("managerはスロット生成を実行できない", func() {
		t := s.T()

		token := authtest.LoginStaff(t, s.Router, "manager@example.com", testStaffPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, generateURL,
			map[string]any{"days": 2}, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("managerはスイープを実行できない", func() {
		t := s.T()

		token := authtest.LoginStaff(t, s.Router, "manager@example.com", testStaffPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("adminはスイープを実行できる", func() {
		t := s.T()

		token := authtest.LoginStaff(t, s.Router, "admin@example.com", testStaffPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
	})

	s.Run("managerでも予約一覧は閲覧できる", func() {
		t := s.T()

		token := authtest.LoginStaff(t, s.Router, "manager@example.com", testStaffPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/reservations", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
	})
}
