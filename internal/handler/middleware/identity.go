package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderUserID carries the caller identity resolved by the upstream gateway.
const HeaderUserID = "X-User-ID"

const ctxUserIDKey = "user_id"

var errMissingIdentity = errors.New("missing or invalid " + HeaderUserID)

// RequireUser trusts the upstream identity header; this service performs no
// authentication of its own.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		userID, err := uuid.Parse(raw)
		if raw == "" || err != nil || userID == uuid.Nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Caller identity required", nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
