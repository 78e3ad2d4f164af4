package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID in the Gin context. The custom
// key type keeps it from colliding with other context values.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID set by AuthMiddleware
// and whether one was present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
