package middleware

import (
	"strings"

	apierrors "github.com/KalyadapuVamshiKrishna/backend-api/internal/errors"
	"github.com/KalyadapuVamshiKrishna/backend-api/internal/models"
	"github.com/KalyadapuVamshiKrishna/backend-api/internal/repository"
	"github.com/KalyadapuVamshiKrishna/backend-api/internal/services"
	"github.com/gin-gonic/gin"
)

const contextKeyUser = "current_user"

// RequireAuth verifies the bearer access token and resolves its username
// claim to a user record. It must run before any task handler; handlers
// downstream read the caller via GetCurrentUser.
func RequireAuth(tokenService *services.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Authorization header missing")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokenService.ParseToken(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// The account may have disappeared between issuance and use
		user, err := userRepo.FindByUsername(claims.Username)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}
