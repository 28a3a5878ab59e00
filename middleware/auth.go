package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
	"github.com/urbfiscalizacao/denuncias-api/utils"
)

const userContextKey = "current_user"

// RequireSession validates the Bearer session token and loads the
// authenticated user into the request context. Session state lives entirely
// in the token plus this per-request lookup; there are no ambient globals.
func RequireSession(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header with Bearer token is required",
				},
			})
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(auth, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Session token is invalid or expired",
				},
			})
			return
		}

		db := config.GetDB()
		var user models.User
		if err := db.Where("username = ?", claims.Username).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNKNOWN_USER",
					"message": "Session user no longer exists",
				},
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin allows only administrators past this point. It must run
// after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetCurrentUser(c)
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Administrator access is required",
				},
			})
			return
		}
		c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from the Gin context
func GetCurrentUser(c *gin.Context) (models.User, error) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, &AuthError{Code: "MISSING_USER", Message: "No authenticated user in context"}
	}
	user, ok := v.(models.User)
	if !ok {
		return models.User{}, &AuthError{Code: "INVALID_USER", Message: "Context user has unexpected type"}
	}
	return user, nil
}

// SetCurrentUser stores the authenticated user in the Gin context.
// Exposed so tests can stand in for RequireSession.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(userContextKey, user)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
