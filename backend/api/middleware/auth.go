package middleware

import (
	"net/http"
	"strings"

	"learnnest/backend/common"
	"learnnest/backend/model"
	"learnnest/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func isBlacklisted(c *gin.Context, tokenString string) bool {
	if !common.RedisEnabled {
		return false
	}
	blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
	return blacklisted > 0
}

// resolveCaller identifies the caller and loads user_id/username/role into the
// context. Three credentials are accepted, in order: the browser session
// written at login, a bearer JWT, and a plain API token minted via
// /api/user/token for non-browser clients. Returns false when none of them
// names an enabled user.
func resolveCaller(c *gin.Context) bool {
	session := sessions.Default(c)
	if id, ok := session.Get("id").(int64); ok {
		status, _ := session.Get("status").(int)
		if status == common.UserStatusDisabled {
			return false
		}
		username, _ := session.Get("username").(string)
		role, _ := session.Get("role").(int)
		c.Set("user_id", id)
		c.Set("username", username)
		c.Set("role", role)
		return true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return false
	}

	if tokenString := extractBearerToken(c); tokenString != "" {
		claims, err := service.ValidateToken(tokenString)
		if err != nil || isBlacklisted(c, tokenString) {
			return false
		}
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)
		return true
	}

	// Not in Bearer form: treat the raw header as an API token.
	user := model.ValidateUserToken(authHeader)
	if user == nil || user.Status == common.UserStatusDisabled {
		return false
	}
	c.Set("user_id", user.ID)
	c.Set("username", user.Username)
	c.Set("role", user.Role)
	return true
}

// UserAuth requires an authenticated caller.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveCaller(c) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "access denied: not logged in or invalid token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalUserAuth loads the caller's identity when valid credentials are
// present and continues anonymously otherwise. Watchlist reads use it: a
// logged-out browser gets empty results instead of 401s.
func OptionalUserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		resolveCaller(c)
		c.Next()
	}
}

// AdminAuth verifies the caller has admin role. It assumes UserAuth has
// already populated the context.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Role information not found",
			})
			c.Abort()
			return
		}

		roleInt, ok := role.(int)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Invalid role format",
			})
			c.Abort()
			return
		}

		if roleInt < common.RoleAdminUser {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
