package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ctxIdentity = "auth_identity"

// RequireUser rejects requests that carry no resolvable credential with 401.
// On success the identity is stored in the Gin context for CurrentUser.
func RequireUser(chain Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := chain.Resolve(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
			return
		}
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "unauthorized",
			})
			return
		}

		c.Set(ctxIdentity, id)
		c.Next()
	}
}

// OptionalUser resolves an identity if one is present but never blocks.
func OptionalUser(chain Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := chain.Resolve(c.Request); err == nil && id != nil {
			c.Set(ctxIdentity, id)
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireUser, or nil.
func CurrentUser(c *gin.Context) *Identity {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}
