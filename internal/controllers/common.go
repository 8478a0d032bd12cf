package controllers

import "github.com/gin-gonic/gin"

// currentUserID reads the authenticated user id set by the auth middleware.
// The second return is false for anonymous requests.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
