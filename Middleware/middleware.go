package Middleware

import (
	"net/http"

	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Utils/Token"

	"github.com/gin-gonic/gin"
)

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := Token.TokenValid(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetCurrentUser resolves the token's account once per request and stores
// it for handlers and role gates downstream.
func SetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := Models.GetUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.IsFrozen {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User Frozen"})
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}

// CurrentUser returns the account stored by SetCurrentUser.
func CurrentUser(c *gin.Context) (Models.User, bool) {
	value, exists := c.Get("currentUser")
	if !exists {
		return Models.User{}, false
	}
	user, ok := value.(Models.User)
	return user, ok
}

// RequireRole gates a route group to the given roles. Routing is decided by
// the role column only, never by username.
func RequireRole(roles ...Models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusUnauthorized, "Unauthorized User Extraction")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.String(http.StatusForbidden, "Unauthorized Not Enough Permission")
		c.Abort()
	}
}
