// Package catalog é o colaborador de catálogo: consultas de produto e o
// mapeamento produto -> categoria de ocorrência usado no checkout.
package catalog

import (
	"strings"

	"alomana/models"

	"github.com/jinzhu/gorm"
)

// Códigos de ordenação aceitos pela vitrine.
const (
	ORDER_MAIS_VENDIDOS = "mais-vendidos"
	ORDER_MENOR_PRECO   = "menor-preco"
	ORDER_MAIOR_PRECO   = "maior-preco"
)

// Catalog é a interface consumida pelo carrinho e pelo checkout. O resto do
// sistema nunca fala com as tabelas de produto diretamente.
type Catalog interface {
	FindActiveByID(id int64) (*models.Product, error)
	FindActiveBySlug(slug string) (*models.Product, error)
	FindActiveByIDs(ids []int64) ([]models.Product, error)
	FindMappingByProductID(productID int64) (*models.OccurrenceMapping, error)
	FindMappingsByProductIDs(productIDs []int64) (map[int64]models.OccurrenceMapping, error)
	SearchActive(term, categorySlug, orderCode string) ([]models.Product, error)
}

type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) FindActiveByID(id int64) (*models.Product, error) {
	var product models.Product
	err := c.db.Where("id = ? AND active = ?", id, true).First(&product).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *GormCatalog) FindActiveBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := c.db.Where("slug = ? AND active = ?", slug, true).First(&product).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *GormCatalog) FindActiveByIDs(ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	err := c.db.Where("id IN (?) AND active = ?", ids, true).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (c *GormCatalog) FindMappingByProductID(productID int64) (*models.OccurrenceMapping, error) {
	var mapping models.OccurrenceMapping
	err := c.db.Where("product_id = ?", productID).First(&mapping).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (c *GormCatalog) FindMappingsByProductIDs(productIDs []int64) (map[int64]models.OccurrenceMapping, error) {
	result := map[int64]models.OccurrenceMapping{}
	if len(productIDs) == 0 {
		return result, nil
	}
	var mappings []models.OccurrenceMapping
	if err := c.db.Where("product_id IN (?)", productIDs).Find(&mappings).Error; err != nil {
		return nil, err
	}
	for _, m := range mappings {
		result[m.ProductID] = m
	}
	return result, nil
}

// SearchActive busca produtos ativos com filtro opcional de categoria e
// busca textual (case-insensitive) em nome e descrições.
func (c *GormCatalog) SearchActive(term, categorySlug, orderCode string) ([]models.Product, error) {
	query := c.db.Where("active = ?", true)

	if categorySlug != "" && categorySlug != "todos" {
		query = query.Where("category_slug = ?", categorySlug)
	}

	if term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description_short) LIKE ? OR LOWER(description_long) LIKE ?",
			like, like, like,
		)
	}

	switch orderCode {
	case ORDER_MENOR_PRECO:
		query = query.Order("price_cents asc").Order("id asc")
	case ORDER_MAIOR_PRECO:
		query = query.Order("price_cents desc").Order("id asc")
	default:
		query = query.Order("featured_order asc").Order("id asc")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SaveMapping cria ou atualiza o mapeamento de um produto. Urgência fora da
// escala conhecida cai para Baixa em vez de falhar.
func (c *GormCatalog) SaveMapping(productID int64, category, urgency string) (*models.OccurrenceMapping, error) {
	var product models.Product
	if err := c.db.First(&product, productID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	if !models.IsValidUrgency(urgency) {
		urgency = models.URGENCY_BAIXA
	}

	var mapping models.OccurrenceMapping
	err := c.db.Where("product_id = ?", product.ID).First(&mapping).Error
	if gorm.IsRecordNotFoundError(err) {
		mapping = models.OccurrenceMapping{
			ProductID:          product.ID,
			OccurrenceCategory: category,
			UrgencyLevel:       urgency,
		}
		if err := c.db.Create(&mapping).Error; err != nil {
			return nil, err
		}
		return &mapping, nil
	}
	if err != nil {
		return nil, err
	}

	mapping.OccurrenceCategory = category
	mapping.UrgencyLevel = urgency
	if err := c.db.Save(&mapping).Error; err != nil {
		return nil, err
	}
	return &mapping, nil
}
