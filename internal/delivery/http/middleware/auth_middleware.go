package middleware

import (
	"net/http"
	"strings"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/auth"
	"corp-social-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Authenticate verifies the bearer token and stores its subject and email.
// It does not require a local profile; see RequireUser.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. Try to get token from Header
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			// 2. Try to get token from Cookie
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Log.Debug("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Next()
	}
}

// RequireUser loads the caller's profile on every request. Unknown and
// inactive users are rejected; other lookup errors go to ErrorHandler.
func RequireUser(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(domain.KeyUserID))

		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if apperror.HasCode(err, http.StatusNotFound) {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "User is inactive", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyIsStaff), user.IsStaff)
		c.Next()
	}
}
