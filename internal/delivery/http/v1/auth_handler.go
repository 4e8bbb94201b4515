package v1

import (
	"net/http"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler mounts profile sync on a group that verifies the token but
// does not require an existing profile.
func NewAuthHandler(tokenOnly *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	authGroup := tokenOnly.Group("/auth")
	{
		authGroup.POST("/sync", handler.SyncProfile)
	}
}

// SyncProfile godoc
// @Summary      Sync profile
// @Description  Create the local profile for the token subject on first login and return it
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /auth/sync [post]
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	email := c.GetString(string(domain.KeyUserEmail))
	if userID == "" {
		_ = c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.authUC.EnsureUserExists(c.Request.Context(), &domain.User{ID: userID, Email: email})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !user.IsActive {
		_ = c.Error(apperror.Unauthorized("User is inactive"))
		return
	}

	response.Success(c, http.StatusOK, "Profile synced", newUserResponse(user))
}
