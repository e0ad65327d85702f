package router

import (
	"net/http"

	"alomana/controllers"

	"github.com/gin-gonic/gin"
)

// Adminizer blocks access to triage routes when there is no staff session.
// A reporter session does not count: os dois domínios são independentes.
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := controllers.CurrentAdmin(c); !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
