package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jobspring-backend/config"
	"jobspring-backend/internal/delivery/http/response"
	"jobspring-backend/internal/domain"
)

// AuthMiddleware validates the bearer token and attaches the resolved
// Principal to the request context. The role always comes from the
// database, never from the token, so revoked or stale role claims cannot
// grant access.
func AuthMiddleware(cfg *config.Config, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, "Invalid subject claim", nil)
			c.Abort()
			return
		}

		// Fetch fresh user data to get the authoritative role.
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPrincipal), domain.Principal{
			UserID: user.ID,
			Role:   user.Role,
		})

		c.Next()
	}
}

// RequireRole gates a route group to a single role. It assumes
// AuthMiddleware already ran.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(string(domain.KeyPrincipal))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		p, ok := v.(domain.Principal)
		if !ok || p.Role != role {
			response.Error(c, http.StatusForbidden, "Insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
