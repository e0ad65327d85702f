package middleware

import "github.com/gin-gonic/gin"

// CORSMiddleware libera CORS para o front da loja. Como a autenticação é por
// cookie de sessão, Allow-Credentials fica ligado; endureça a origem antes
// de expor fora do ambiente de desenvolvimento.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
