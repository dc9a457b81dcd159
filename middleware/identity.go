// File: middleware/identity.go
package middleware

import (
	"net/http"

	clientRepo "clinibook/database/repository/client"
	professionalRepo "clinibook/database/repository/professional"

	"github.com/gin-gonic/gin"
)

// ResolveClient maps the authenticated user to their client record and sets
// "clientID" on the context. Aborts with 403 when no client record exists.
func ResolveClient(clients clientRepo.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		client, err := clients.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No client profile for this account"})
			return
		}
		c.Set("clientID", client.ID)
		c.Next()
	}
}

// ResolveProfessional maps the authenticated user to their professional record
// and sets "professionalID" on the context.
func ResolveProfessional(pros professionalRepo.ProfessionalRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		pro, err := pros.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No professional profile for this account"})
			return
		}
		c.Set("professionalID", pro.ID)
		c.Next()
	}
}
