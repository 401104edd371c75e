package middleware

import "github.com/gin-gonic/gin"

// actorHeader identifies the operator performing a request, used only for
// audit columns. Authentication itself is owned by the upstream gateway.
const actorHeader = "X-Actor"

// defaultActor is recorded when no actor header is supplied.
const defaultActor = "system"

// GetActorFromContext returns the acting user for audit purposes.
func GetActorFromContext(c *gin.Context) string {
	actor := c.GetHeader(actorHeader)
	if actor == "" {
		return defaultActor
	}
	return actor
}
