//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"escape-rooms-backend/internal/handler/dto/request"
	"escape-rooms-backend/internal/handler/dto/response"
	"escape-rooms-backend/tests/common/dbtest"
	"escape-rooms-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginStaff(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res response.LoginResponse
	err := httptest.DecodeResponseBody(t, w.Body, &res)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token, "login response should carry a token")

	return res.Token
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestStaff(t, db, email, role, "password123")
	return LoginStaff(t, router, email, "password123")
}
