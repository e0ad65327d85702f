// Package cart implementa o carrinho de sessão. O carrinho não tem identidade
// própria: é só um mapa produto->quantidade guardado no blob da sessão do
// visitante, saneado a cada leitura.
package cart

import (
	"encoding/gob"
	"sort"
	"strconv"

	"alomana/catalog"
	"alomana/models"
)

// SessionKey é a chave fixa do carrinho dentro do blob de sessão.
const SessionKey = "cart"

// MaxQuantity limita a quantidade por item. Estouro satura, não erra.
const MaxQuantity = 99

func init() {
	// O cookie store serializa com gob; o tipo concreto precisa estar registrado.
	gob.Register(map[string]int{})
}

// Session é a fatia da sessão do visitante que o carrinho precisa. A sessão
// do gin-contrib/sessions satisfaz essa interface.
type Session interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Save() error
}

// Line é uma linha precificada do carrinho.
type Line struct {
	Product        models.Product `json:"product"`
	Quantity       int            `json:"quantity"`
	LineTotalCents int64          `json:"line_total_cents"`
}

type Cart struct {
	session Session
}

func New(session Session) *Cart {
	return &Cart{session: session}
}

// ClampQuantity normaliza uma quantidade pedida para a faixa [1, 99].
func ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// normalize descarta entradas inválidas do dado cru da sessão: chave que não
// é id numérico positivo, quantidade <= 0. Quantidades acima do teto saturam.
// Contrato de auto-reparo: dado quebrado some em silêncio, nunca vira erro.
func normalize(raw interface{}) (map[string]int, bool) {
	stored, ok := raw.(map[string]int)
	if !ok {
		return map[string]int{}, raw != nil
	}

	cleaned := map[string]int{}
	changed := false
	for key, quantity := range stored {
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || productID <= 0 {
			changed = true
			continue
		}
		if quantity <= 0 {
			changed = true
			continue
		}
		if quantity > MaxQuantity {
			quantity = MaxQuantity
			changed = true
		}
		cleaned[strconv.FormatInt(productID, 10)] = quantity
	}
	return cleaned, changed
}

func (c *Cart) load() map[string]int {
	cleaned, changed := normalize(c.session.Get(SessionKey))
	if changed {
		// repara a sessão no caminho de leitura; falha de escrita aqui não
		// deve derrubar uma consulta
		c.session.Set(SessionKey, cleaned)
		_ = c.session.Save()
	}
	return cleaned
}

func (c *Cart) persist(stored map[string]int) error {
	c.session.Set(SessionKey, stored)
	return c.session.Save()
}

// Items devolve o carrinho normalizado como produto->quantidade.
func (c *Cart) Items() map[int64]int {
	stored := c.load()
	items := make(map[int64]int, len(stored))
	for key, quantity := range stored {
		productID, _ := strconv.ParseInt(key, 10, 64)
		items[productID] = quantity
	}
	return items
}

// Count soma as quantidades (o badge do carrinho na vitrine).
func (c *Cart) Count() int {
	total := 0
	for _, quantity := range c.load() {
		total += quantity
	}
	return total
}

// Add soma a quantidade (já normalizada para [1,99]) à entrada existente,
// saturando em 99.
func (c *Cart) Add(productID int64, quantity int) error {
	stored := c.load()
	key := strconv.FormatInt(productID, 10)
	total := stored[key] + ClampQuantity(quantity)
	if total > MaxQuantity {
		total = MaxQuantity
	}
	stored[key] = total
	return c.persist(stored)
}

// SetQuantity troca a quantidade da entrada. Zero ou negativo remove.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	stored := c.load()
	key := strconv.FormatInt(productID, 10)
	if quantity <= 0 {
		delete(stored, key)
	} else {
		if quantity > MaxQuantity {
			quantity = MaxQuantity
		}
		stored[key] = quantity
	}
	return c.persist(stored)
}

// Remove tira a entrada do carrinho. Ausente é no-op.
func (c *Cart) Remove(productID int64) error {
	stored := c.load()
	delete(stored, strconv.FormatInt(productID, 10))
	return c.persist(stored)
}

// Clear esvazia o carrinho (chamado no fim do checkout).
func (c *Cart) Clear() error {
	return c.persist(map[string]int{})
}

// Has informa se o produto está no carrinho.
func (c *Cart) Has(productID int64) bool {
	stored := c.load()
	_, ok := stored[strconv.FormatInt(productID, 10)]
	return ok
}

// PriceLines junta o carrinho com o catálogo e devolve as linhas
// precificadas mais o subtotal em centavos. Só produtos ativos entram:
// produto desativado depois de ir pro carrinho simplesmente não aparece.
// A ordem é determinística (id de produto crescente).
func (c *Cart) PriceLines(cat catalog.Catalog) ([]Line, int64, error) {
	items := c.Items()
	if len(items) == 0 {
		return []Line{}, 0, nil
	}

	ids := make([]int64, 0, len(items))
	for productID := range items {
		ids = append(ids, productID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := cat.FindActiveByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	lines := []Line{}
	var subtotalCents int64
	for _, productID := range ids {
		product, ok := byID[productID]
		if !ok {
			continue
		}
		quantity := items[productID]
		lineTotal := product.PriceCents * int64(quantity)
		subtotalCents += lineTotal
		lines = append(lines, Line{
			Product:        product,
			Quantity:       quantity,
			LineTotalCents: lineTotal,
		})
	}
	return lines, subtotalCents, nil
}
