package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jon4hz/wishwell/internal/database"
)

// Role is the closed set of profiles a route can be gated on.
type Role uint8

const (
	RoleAdmin Role = iota
	RoleSuperUser
)

// allows reports whether the user holds the role. Unknown roles deny.
func (r Role) allows(user *database.User) bool {
	switch r {
	case RoleAdmin:
		return user.IsAdmin
	case RoleSuperUser:
		return user.IsSuperUser
	default:
		return false
	}
}

// RequireAuth returns middleware that requires a valid session.
// The user is looked up fresh from the database and stored in the context.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := p.currentUser(c)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// RequireRole returns middleware that requires the freshly loaded user to
// hold the given role. It rejects before any handler runs.
func (p *Provider) RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet("user").(*database.User)
		if !ok || !role.allows(user) {
			c.HTML(http.StatusForbidden, "error.html", gin.H{"Message": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
