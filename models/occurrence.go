package models

import (
	"encoding/json"
	"time"
)

/************************************************
/**** MARK: OCCURRENCE STATUSES ****/
/************************************************/
const STATUS_NOVO = "Novo"
const STATUS_EM_TRIAGEM = "Em triagem"
const STATUS_ENCAMINHADO = "Encaminhado"
const STATUS_CONCLUIDO = "Concluído"

/************************************************
/**** MARK: URGENCY LEVELS ****/
/************************************************/
const URGENCY_BAIXA = "Baixa"
const URGENCY_MEDIA = "Média"
const URGENCY_ALTA = "Alta"
const URGENCY_CRITICA = "Crítica"

// DEFAULT_CATEGORY é usada quando o produto não tem mapeamento válido.
const DEFAULT_CATEGORY = "Ocorrencia geral"

// ValidStatuses lista os status aceitos, na ordem natural do fluxo de triagem.
var ValidStatuses = []string{STATUS_NOVO, STATUS_EM_TRIAGEM, STATUS_ENCAMINHADO, STATUS_CONCLUIDO}

// UrgencyScore define a ordem total Baixa < Média < Alta < Crítica.
var UrgencyScore = map[string]int{
	URGENCY_BAIXA:   1,
	URGENCY_MEDIA:   2,
	URGENCY_ALTA:    3,
	URGENCY_CRITICA: 4,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidUrgency(level string) bool {
	_, ok := UrgencyScore[level]
	return ok
}

// MaxUrgency retorna o mais urgente entre dois níveis. Níveis desconhecidos
// contam como Baixa.
func MaxUrgency(a, b string) string {
	if UrgencyScore[b] > UrgencyScore[a] {
		return b
	}
	if _, ok := UrgencyScore[a]; !ok {
		return URGENCY_BAIXA
	}
	return a
}

// Occurrence é o registro central do sistema: o "pedido" da loja é na verdade
// um relato confidencial. Criada uma única vez no checkout; depois disso só o
// gerenciador de ciclo de vida mexe (status, notas, mensagens).
type Occurrence struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Protocol  string     `gorm:"not null;unique_index" json:"protocol"`
	CreatedAt *time.Time `gorm:"index" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	Status         string `gorm:"not null;default:'Novo';index" json:"status"`
	MappedCategory string `gorm:"not null" json:"mapped_category"`
	UrgencyLevel   string `gorm:"not null" json:"urgency_level"`
	UserID         *int64 `gorm:"index" json:"user_id"`

	ContactPhone string `gorm:"default:''" json:"contact_phone"`
	ContactEmail string `gorm:"default:''" json:"contact_email"`
	Observation  string `gorm:"type:text" json:"observation"`

	// ItemsJSON congela os itens no instante do checkout. Edições posteriores
	// no catálogo nunca alteram ocorrências históricas.
	ItemsJSON     string `gorm:"type:text;not null;default:'[]'" json:"-"`
	SubtotalCents int64  `gorm:"not null;default:0" json:"subtotal_cents"`
	DiscountCents int64  `gorm:"not null;default:0" json:"discount_cents"`
	TotalCents    int64  `gorm:"not null;default:0" json:"total_cents"`
}

// OccurrenceItem é uma linha do snapshot imutável de itens.
type OccurrenceItem struct {
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	CategorySlug   string `json:"category_slug"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

func (o *Occurrence) SetItems(items []OccurrenceItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.ItemsJSON = string(b)
	return nil
}

// Items decodifica o snapshot. JSON quebrado vira lista vazia, nunca erro.
func (o Occurrence) Items() []OccurrenceItem {
	raw := o.ItemsJSON
	if raw == "" {
		raw = "[]"
	}
	var items []OccurrenceItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []OccurrenceItem{}
	}
	if items == nil {
		return []OccurrenceItem{}
	}
	return items
}
