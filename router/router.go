package router

import (
	"log"

	"alomana/config"
	"alomana/controllers"
	"alomana/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public storefront + cart,
// authenticated reporter routes (Authorizer) and triage routes (Adminizer).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth): storefront, cart e autenticação
	api.GET("/health", Logger(), controllers.Health)
	api.GET("/produtos", Logger(), controllers.GetProducts)
	api.GET("/produtos/:slug", Logger(), controllers.GetProductBySlug)

	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)
	api.POST("/logout", Logger(), controllers.Logout)
	api.POST("/admin/login", Logger(), controllers.AdminLogin)
	api.POST("/admin/logout", Logger(), controllers.AdminLogout)

	// O carrinho é da sessão do visitante; não exige login
	api.GET("/cart", Logger(), controllers.GetCart)
	api.POST("/cart/items", Logger(), controllers.AddCartItem)
	api.PUT("/cart/items/:productId", Logger(), controllers.UpdateCartItem)
	api.DELETE("/cart/items/:productId", Logger(), controllers.RemoveCartItem)

	// Leitura de ocorrências: o serviço decide pelo Principal (triagem vê
	// tudo, usuário vê as próprias)
	api.GET("/occurrences", Logger(), controllers.GetOccurrences)
	api.GET("/occurrences/:id", Logger(), controllers.GetOccurrenceByID)

	// Reporter routes (sessão de usuário obrigatória)
	user := api.Group("")
	user.Use(Authorizer())
	user.POST("/checkout", Logger(), controllers.Checkout)
	user.POST("/occurrences/:id/messages", Logger(), controllers.CreateOccurrenceMessage)

	// Triage routes (sessão de admin obrigatória)
	admin := api.Group("")
	admin.Use(Adminizer())
	admin.POST("/occurrences/:id/status", Logger(), controllers.UpdateOccurrenceStatus)
	admin.POST("/occurrences/:id/notes", Logger(), controllers.CreateOccurrenceNote)
	admin.GET("/admin/mappings", Logger(), controllers.GetMappings)
	admin.POST("/admin/mappings", Logger(), controllers.SaveMapping)

	log.Printf("Routes initialized")
}
