package controllers

import (
	"net/http"
	"time"

	"alomana/catalog"
	dbpkg "alomana/db"
	"alomana/models"
	"alomana/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	RespondSuccess(c, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/produtos?q=&categoria=&ordem=
func GetProducts(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	term := c.Query("q")
	categorySlug := c.DefaultQuery("categoria", "todos")
	orderCode := c.DefaultQuery("ordem", catalog.ORDER_MAIS_VENDIDOS)

	cat := catalog.NewGormCatalog(db)
	products, err := cat.SearchActive(term, categorySlug, orderCode)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"products": products})
}

// GET /api/produtos/:slug
func GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		RespondError(c, "slug é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	cat := catalog.NewGormCatalog(db)
	product, err := cat.FindActiveBySlug(slug)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if product == nil {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}

	// até 4 produtos ativos da mesma categoria, sem o próprio
	sameCategory, err := cat.SearchActive("", product.CategorySlug, catalog.ORDER_MAIS_VENDIDOS)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	related := []models.Product{}
	for _, p := range sameCategory {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == 4 {
			break
		}
	}

	RespondSuccess(c, gin.H{
		"product":         product,
		"price_formatted": tools.FormatBRL(product.PriceCents),
		"related":         related,
	})
}
