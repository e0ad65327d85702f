package controllers

import (
	"net/http"
	"strings"

	"alomana/catalog"
	dbpkg "alomana/db"
	"alomana/occurrences"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	ContactPhone string `json:"contact_phone" form:"contact_phone"`
	ContactEmail string `json:"contact_email" form:"contact_email"`
	Observation  string `json:"observation" form:"observation"`
}

// POST /api/checkout
// Converte o carrinho da sessão em uma ocorrência nova. Exige usuário logado
// e carrinho não vazio; em caso de sucesso esvazia o carrinho e devolve o id
// e o protocolo da ocorrência.
func Checkout(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}
	cat := catalog.NewGormCatalog(db)

	visitorCart := cartFromContext(c)
	lines, _, err := visitorCart.PriceLines(cat)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(lines) == 0 {
		RespondError(c, "seu carrinho está vazio", http.StatusBadRequest)
		return
	}

	productIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.Product.ID)
	}
	mappings, err := cat.FindMappingsByProductIDs(productIDs)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	contact := occurrences.ContactInfo{
		Phone:       strings.TrimSpace(req.ContactPhone),
		Email:       strings.TrimSpace(req.ContactEmail),
		Observation: strings.TrimSpace(req.Observation),
	}

	occurrence, err := occurrences.Translate(lines, mappings, contact, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	if err := occurrences.NewService(db).Create(&occurrence); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	// a criação persistiu; o carrinho já cumpriu o papel dele
	if err := visitorCart.Clear(); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"occurrence_id": occurrence.ID,
		"protocol":      occurrence.Protocol,
		"status":        occurrence.Status,
	})
}
