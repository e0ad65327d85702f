package router

import (
	"net/http"

	"alomana/controllers"

	"github.com/gin-gonic/gin"
)

// Authorizer blocks access to routes that require a logged-in reporter.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := controllers.CurrentUser(c); !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
