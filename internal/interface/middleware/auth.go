package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"taskvault/pkg/helpers"
	"taskvault/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// bearerToken resolves the access token from the Authorization header
// (Bearer scheme) or, failing that, the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie("access_token"); err == nil {
		return token
	}
	return ""
}

// Auth validates the access token and ensures an active session exists in
// redis. It attaches the resolved identity to the Gin context; downstream
// handlers treat a missing identity as deny.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.UserID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				response.AbortFail(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
