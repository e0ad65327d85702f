package controllers

import (
	"net/http"
	"strings"

	"alomana/catalog"
	dbpkg "alomana/db"
	"alomana/models"

	"github.com/gin-gonic/gin"
)

type SaveMappingRequest struct {
	ProductID          int64  `json:"product_id" form:"product_id"`
	OccurrenceCategory string `json:"occurrence_category" form:"occurrence_category"`
	UrgencyLevel       string `json:"urgency_level" form:"urgency_level"`
}

// MappingRow junta o produto com o mapeamento dele (se existir) para o
// painel de triagem.
type MappingRow struct {
	Product models.Product            `json:"product"`
	Mapping *models.OccurrenceMapping `json:"mapping"`
}

// GET /api/admin/mappings (triagem)
func GetMappings(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var products []models.Product
	err := db.Where("active = ?", true).
		Order("category_slug asc").Order("name asc").
		Find(&products).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	mappings, err := catalog.NewGormCatalog(db).FindMappingsByProductIDs(ids)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	rows := make([]MappingRow, 0, len(products))
	for _, p := range products {
		row := MappingRow{Product: p}
		if m, ok := mappings[p.ID]; ok {
			mCopy := m
			row.Mapping = &mCopy
		}
		rows = append(rows, row)
	}

	RespondSuccess(c, gin.H{
		"mappings":       rows,
		"urgency_levels": []string{models.URGENCY_BAIXA, models.URGENCY_MEDIA, models.URGENCY_ALTA, models.URGENCY_CRITICA},
	})
}

// POST /api/admin/mappings (triagem)
// Cria ou atualiza o mapeamento do produto. Urgência desconhecida cai para
// Baixa, igual ao comportamento do checkout.
func SaveMapping(c *gin.Context) {
	var req SaveMappingRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	category := strings.TrimSpace(req.OccurrenceCategory)
	if req.ProductID <= 0 || category == "" {
		RespondError(c, "produto e categoria são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	mapping, err := catalog.NewGormCatalog(db).SaveMapping(req.ProductID, category, strings.TrimSpace(req.UrgencyLevel))
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if mapping == nil {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"mapping": mapping})
}
