package occurrences

import (
	"alomana/cart"
	"alomana/models"

	"github.com/google/uuid"
)

// ContactInfo são os campos opcionais que o usuário informa no checkout.
type ContactInfo struct {
	Phone       string
	Email       string
	Observation string
}

// Translate converte as linhas precificadas do carrinho em uma ocorrência
// nova. Função pura: não toca banco nem sessão.
//
// Regras de agregação:
//   - linha com mapeamento válido contribui com a categoria dele e o nível
//     de urgência entra na disputa pelo máximo;
//   - linha sem mapeamento (ou com urgência fora da escala) contribui com
//     "Ocorrencia geral" e Baixa;
//   - mapped_category é a lista de categorias distintas na ordem da primeira
//     ocorrência, unida por ", ";
//   - o "pedido" sai integralmente cortesia: desconto == subtotal, total 0.
func Translate(lines []cart.Line, mappings map[int64]models.OccurrenceMapping, contact ContactInfo, userID int64) (models.Occurrence, error) {
	if len(lines) == 0 {
		return models.Occurrence{}, ValidationError{Reason: "carrinho vazio"}
	}

	var categories []string
	seen := map[string]bool{}
	highestUrgency := models.URGENCY_BAIXA

	items := make([]models.OccurrenceItem, 0, len(lines))
	var subtotalCents int64

	for _, line := range lines {
		category := models.DEFAULT_CATEGORY
		mapping, ok := mappings[line.Product.ID]
		if ok && models.IsValidUrgency(mapping.UrgencyLevel) {
			category = mapping.OccurrenceCategory
			highestUrgency = models.MaxUrgency(highestUrgency, mapping.UrgencyLevel)
		}
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}

		subtotalCents += line.LineTotalCents
		items = append(items, models.OccurrenceItem{
			ProductID:      line.Product.ID,
			ProductName:    line.Product.Name,
			CategorySlug:   line.Product.CategorySlug,
			Quantity:       line.Quantity,
			UnitPriceCents: line.Product.PriceCents,
			LineTotalCents: line.LineTotalCents,
		})
	}

	mappedCategory := joinCategories(categories)

	occurrence := models.Occurrence{
		Protocol:       uuid.NewString(),
		Status:         models.STATUS_NOVO,
		MappedCategory: mappedCategory,
		UrgencyLevel:   highestUrgency,
		UserID:         &userID,
		ContactPhone:   contact.Phone,
		ContactEmail:   contact.Email,
		Observation:    contact.Observation,
		SubtotalCents:  subtotalCents,
		DiscountCents:  subtotalCents,
		TotalCents:     0,
	}
	if err := occurrence.SetItems(items); err != nil {
		return models.Occurrence{}, err
	}
	return occurrence, nil
}

func joinCategories(categories []string) string {
	if len(categories) == 0 {
		return models.DEFAULT_CATEGORY
	}
	out := categories[0]
	for _, c := range categories[1:] {
		out += ", " + c
	}
	return out
}
