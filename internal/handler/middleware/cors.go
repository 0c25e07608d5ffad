package middleware

import (
	"log/slog"
	"slices"

	"escape-rooms-backend/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	// Busy (503) responses carry Retry-After; browser clients need it
	// exposed even when the deployment overrides the header list.
	expose := cfg.ExposeHeaders
	if !slices.Contains(expose, "Retry-After") {
		expose = append(slices.Clone(expose), "Retry-After")
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
