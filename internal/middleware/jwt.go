package middleware

import (
	"net/http"                    // HTTP status codes
	"strings"                     // String manipulation
	"task_system/internal/domain" // Importing domain models
	"task_system/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CurrentUserKey is the gin context key holding the resolved identity
const CurrentUserKey = "currentUser"

// AuthRequired validates the bearer token and resolves the current user.
// The token's subject is looked up on every request; a token whose user
// has since been deleted is rejected here — there is no revocation list.
func AuthRequired(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		username, err := utils.ParseJWT(tokenStr, secret)     // Verify signature and expiry
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		var user domain.User // Resolve the subject to a stored user
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			// Token is syntactically valid but the user is gone
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.Set(CurrentUserKey, user) // Store resolved user in context
		c.Next()                    // Proceed to the next handler
	}
}

// CurrentUser returns the identity resolved by AuthRequired.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
