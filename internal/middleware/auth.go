package middleware

import (
	"errors"

	"github.com/fadildr/tasktrack-api/internal/auth"
	"github.com/fadildr/tasktrack-api/internal/constants"
	apierrors "github.com/fadildr/tasktrack-api/internal/errors"
	"github.com/fadildr/tasktrack-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the Bearer token on incoming requests and stores
// the embedded user claim in the request context.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				apierrors.Unauthorized(c, "Unauthorized: No token provided")
			} else {
				apierrors.Unauthorized(c, "Malformed authorization header")
			}
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, claims.User)
		c.Set(constants.ContextKeyUserID, claims.User.ID)
		c.Next()
	}
}

// RequireLead restricts the route to users with the lead role.
func RequireLead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if user.Role != models.RoleLead {
			apierrors.Forbidden(c, "Only leads can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user claim from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
