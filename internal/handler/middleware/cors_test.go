//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"escape-rooms-backend/internal/handler/middleware"
	"escape-rooms-backend/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	perform := func(t *testing.T, cfg config.CORSConfig) *httptest.ResponseRecorder {
		t.Helper()
		router := gin.New()
		router.Use(middleware.NewCORSMiddleware(cfg))
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/ping", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Retry-Afterは設定に無くても必ず公開される", func(t *testing.T) {
		w := perform(t, config.CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
	})

	t.Run("設定済みの場合は重複させない", func(t *testing.T) {
		w := perform(t, config.CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET"},
			AllowHeaders:  []string{"Authorization"},
			ExposeHeaders: []string{"Content-Length", "Retry-After"},
		})

		exposed := w.Header().Get("Access-Control-Expose-Headers")
		assert.Equal(t, 1, strings.Count(exposed, "Retry-After"))
	})
}
