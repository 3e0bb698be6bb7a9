package middleware

import (
	"log/slog"
	"slices"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always admits the identity header; without it browsers
// could never reach the player and owner routes.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowHeaders := slices.Clone(cfg.AllowHeaders)
	if !slices.Contains(allowHeaders, HeaderUserID) {
		allowHeaders = append(allowHeaders, HeaderUserID)
	}
	exposeHeaders := slices.Clone(cfg.ExposeHeaders)
	if !slices.Contains(exposeHeaders, HeaderRequestID) {
		exposeHeaders = append(exposeHeaders, HeaderRequestID)
	}

	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "allow_headers", allowHeaders)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    exposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
