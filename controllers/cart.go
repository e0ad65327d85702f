package controllers

import (
	"net/http"

	"alomana/cart"
	"alomana/catalog"
	dbpkg "alomana/db"
	"alomana/tools"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" form:"product_id"`
	Quantity  int   `json:"quantity" form:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int   `json:"quantity" form:"quantity"`
	Action   string `json:"action" form:"action"` // "inc" ou "dec"
}

func cartFromContext(c *gin.Context) *cart.Cart {
	return cart.New(sessions.Default(c))
}

// GET /api/cart
func GetCart(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	visitorCart := cartFromContext(c)
	lines, subtotalCents, err := visitorCart.PriceLines(catalog.NewGormCatalog(db))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{
		"lines":              lines,
		"subtotal_cents":     subtotalCents,
		"subtotal_formatted": tools.FormatBRL(subtotalCents),
		"items_count":        visitorCart.Count(),
	})
}

// POST /api/cart/items
func AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProductID <= 0 {
		RespondError(c, "product_id é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	product, err := catalog.NewGormCatalog(db).FindActiveByID(req.ProductID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if product == nil {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}

	visitorCart := cartFromContext(c)
	if err := visitorCart.Add(product.ID, req.Quantity); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"items_count": visitorCart.Count()})
}

// PUT /api/cart/items/:productId
// Aceita quantity explícito ou action inc|dec sobre a quantidade atual.
func UpdateCartItem(c *gin.Context) {
	productID, ok := ParamID(c, "productId")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	visitorCart := cartFromContext(c)
	items := visitorCart.Items()
	current, inCart := items[productID]
	if !inCart {
		RespondError(c, "item não encontrado no carrinho", http.StatusNotFound)
		return
	}

	quantity := current
	if req.Quantity != nil {
		quantity = *req.Quantity
	} else {
		switch req.Action {
		case "inc":
			quantity = current + 1
		case "dec":
			quantity = current - 1
		}
	}

	if err := visitorCart.SetQuantity(productID, quantity); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"items_count": visitorCart.Count()})
}

// DELETE /api/cart/items/:productId
func RemoveCartItem(c *gin.Context) {
	productID, ok := ParamID(c, "productId")
	if !ok {
		return
	}

	visitorCart := cartFromContext(c)
	if err := visitorCart.Remove(productID); err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"items_count": visitorCart.Count()})
}
