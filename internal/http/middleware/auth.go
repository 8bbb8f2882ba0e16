package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/service"
)

const actorKey = "actor"

// JWT requires a valid bearer token and stores the resolved actor in the
// request context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := bearerActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalJWT resolves the actor when a valid token is present but lets
// anonymous requests through. Registration uses it: an admin token on the
// register endpoint unlocks role selection.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := bearerActor(c); ok {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// RequireAdmin aborts unless the JWT middleware resolved an admin actor.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated actor stored by JWT or OptionalJWT.
func Actor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

func bearerActor(c *gin.Context) (domain.Actor, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return domain.Actor{}, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Actor{}, false
	}
	actor, err := service.ParseJWT(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Actor{}, false
	}
	return actor, true
}
