package models

import "time"

// Product representa um item da vitrine. Depois de criado, apenas o campo
// Active muda (desativar tira o produto da loja sem apagar histórico).
type Product struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Slug             string     `gorm:"not null;unique_index" json:"slug" form:"slug"`
	Name             string     `gorm:"not null" json:"name" form:"name"`
	CategorySlug     string     `gorm:"not null;index" json:"category_slug" form:"category_slug"`
	CategoryLabel    string     `gorm:"not null" json:"category_label" form:"category_label"`
	PriceCents       int64      `gorm:"not null" json:"price_cents" form:"price_cents"`
	DescriptionShort string     `gorm:"type:text" json:"description_short" form:"description_short"`
	DescriptionLong  string     `gorm:"type:text" json:"description_long" form:"description_long"`
	ImageFilename    string     `gorm:"default:''" json:"image_filename" form:"image_filename"`
	FeaturedOrder    int        `gorm:"default:0" json:"featured_order" form:"featured_order"`
	Active           bool       `gorm:"not null;default:true" json:"active" form:"active"`
	CreatedAt        *time.Time `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// OccurrenceMapping liga um produto (1:1) a uma categoria de ocorrência e um
// nível de urgência. Produto sem mapeamento cai em "Ocorrencia geral"/Baixa
// na hora do checkout — isso não é persistido como mapeamento real.
type OccurrenceMapping struct {
	ID                 int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ProductID          int64      `gorm:"not null;unique_index" json:"product_id" form:"product_id"`
	OccurrenceCategory string     `gorm:"not null" json:"occurrence_category" form:"occurrence_category"`
	UrgencyLevel       string     `gorm:"not null;default:'Baixa'" json:"urgency_level" form:"urgency_level"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}
