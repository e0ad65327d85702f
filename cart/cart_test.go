package cart

import (
	"testing"

	"alomana/models"
)

// fakeSession guarda o blob em memória, igual ao contrato do session store.
type fakeSession struct {
	values map[interface{}]interface{}
	saves  int
}

func newFakeSession() *fakeSession {
	return &fakeSession{values: map[interface{}]interface{}{}}
}

func (s *fakeSession) Get(key interface{}) interface{} {
	return s.values[key]
}

func (s *fakeSession) Set(key interface{}, val interface{}) {
	s.values[key] = val
}

func (s *fakeSession) Save() error {
	s.saves++
	return nil
}

// fakeCatalog responde FindActiveByIDs a partir de uma lista fixa.
type fakeCatalog struct {
	products []models.Product
}

func (f *fakeCatalog) FindActiveByID(id int64) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id && p.Active {
			pc := p
			return &pc, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) FindActiveBySlug(slug string) (*models.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug && p.Active {
			pc := p
			return &pc, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) FindActiveByIDs(ids []int64) ([]models.Product, error) {
	wanted := map[int64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Product
	for _, p := range f.products {
		if p.Active && wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindMappingByProductID(productID int64) (*models.OccurrenceMapping, error) {
	return nil, nil
}

func (f *fakeCatalog) FindMappingsByProductIDs(productIDs []int64) (map[int64]models.OccurrenceMapping, error) {
	return map[int64]models.OccurrenceMapping{}, nil
}

func (f *fakeCatalog) SearchActive(term, categorySlug, orderCode string) ([]models.Product, error) {
	return f.products, nil
}

func TestAddClampsQuantity(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"negative", -5, 1},
		{"zero", 0, 1},
		{"one", 1, 1},
		{"normal", 7, 7},
		{"above cap", 150, 99},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(newFakeSession())
			if err := c.Add(10, tc.in); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if got := c.Items()[10]; got != tc.want {
				t.Fatalf("expected quantity %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAddAccumulatesAndSaturates(t *testing.T) {
	c := New(newFakeSession())
	for i := 0; i < 5; i++ {
		if err := c.Add(3, 30); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if got := c.Items()[3]; got != 99 {
		t.Fatalf("expected saturation at 99, got %d", got)
	}
}

func TestSetQuantity(t *testing.T) {
	t.Run("zero removes the entry", func(t *testing.T) {
		c := New(newFakeSession())
		if err := c.Add(5, 2); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if err := c.SetQuantity(5, 0); err != nil {
			t.Fatalf("SetQuantity: %v", err)
		}
		if _, ok := c.Items()[5]; ok {
			t.Fatal("entry should have been removed")
		}
	})

	t.Run("negative removes the entry", func(t *testing.T) {
		c := New(newFakeSession())
		if err := c.Add(5, 2); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if err := c.SetQuantity(5, -3); err != nil {
			t.Fatalf("SetQuantity: %v", err)
		}
		if len(c.Items()) != 0 {
			t.Fatal("cart should be empty")
		}
	})

	t.Run("caps at 99", func(t *testing.T) {
		c := New(newFakeSession())
		if err := c.SetQuantity(5, 1000); err != nil {
			t.Fatalf("SetQuantity: %v", err)
		}
		if got := c.Items()[5]; got != 99 {
			t.Fatalf("expected 99, got %d", got)
		}
	})
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New(newFakeSession())
	if err := c.Remove(42); err != nil {
		t.Fatalf("Remove on absent entry: %v", err)
	}
	if err := c.Add(42, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Remove(42); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove(42); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if len(c.Items()) != 0 {
		t.Fatal("cart should be empty")
	}
}

func TestItemsRepairsMalformedSessionData(t *testing.T) {
	t.Run("drops bad entries and persists the repair", func(t *testing.T) {
		s := newFakeSession()
		s.Set(SessionKey, map[string]int{
			"1":     2,
			"2":     0,    // quantidade inválida
			"3":     -4,   // quantidade inválida
			"abc":   5,    // chave inválida
			"-7":    3,    // id não positivo
			"4":     1000, // acima do teto
		})

		items := New(s).Items()
		if len(items) != 2 {
			t.Fatalf("expected 2 surviving entries, got %d: %v", len(items), items)
		}
		if items[1] != 2 {
			t.Fatalf("expected entry 1 -> 2, got %d", items[1])
		}
		if items[4] != 99 {
			t.Fatalf("expected entry 4 capped at 99, got %d", items[4])
		}

		stored, ok := s.Get(SessionKey).(map[string]int)
		if !ok {
			t.Fatal("repaired cart not persisted back to the session")
		}
		if len(stored) != 2 {
			t.Fatalf("expected repaired session with 2 entries, got %v", stored)
		}
	})

	t.Run("wrong type becomes empty cart", func(t *testing.T) {
		s := newFakeSession()
		s.Set(SessionKey, "not a cart")

		if items := New(s).Items(); len(items) != 0 {
			t.Fatalf("expected empty cart, got %v", items)
		}
	})

	t.Run("missing key means empty cart", func(t *testing.T) {
		if items := New(newFakeSession()).Items(); len(items) != 0 {
			t.Fatalf("expected empty cart, got %v", items)
		}
	})
}

func TestCount(t *testing.T) {
	c := New(newFakeSession())
	if c.Count() != 0 {
		t.Fatalf("expected empty count, got %d", c.Count())
	}
	_ = c.Add(1, 2)
	_ = c.Add(2, 3)
	if c.Count() != 5 {
		t.Fatalf("expected count 5, got %d", c.Count())
	}
}

func TestPriceLines(t *testing.T) {
	cat := &fakeCatalog{products: []models.Product{
		{ID: 1, Slug: "a", Name: "A", PriceCents: 1000, Active: true},
		{ID: 2, Slug: "b", Name: "B", PriceCents: 2500, Active: true},
		{ID: 3, Slug: "c", Name: "C", PriceCents: 9999, Active: false},
	}}

	t.Run("empty cart", func(t *testing.T) {
		lines, subtotal, err := New(newFakeSession()).PriceLines(cat)
		if err != nil {
			t.Fatalf("PriceLines: %v", err)
		}
		if len(lines) != 0 || subtotal != 0 {
			t.Fatalf("expected no lines, got %v (subtotal %d)", lines, subtotal)
		}
	})

	t.Run("totals and deterministic order", func(t *testing.T) {
		c := New(newFakeSession())
		_ = c.Add(2, 1)
		_ = c.Add(1, 3)

		lines, subtotal, err := c.PriceLines(cat)
		if err != nil {
			t.Fatalf("PriceLines: %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0].Product.ID != 1 || lines[1].Product.ID != 2 {
			t.Fatalf("expected product id order, got %d then %d", lines[0].Product.ID, lines[1].Product.ID)
		}
		if lines[0].LineTotalCents != 3000 {
			t.Fatalf("expected line total 3000, got %d", lines[0].LineTotalCents)
		}
		if subtotal != 5500 {
			t.Fatalf("expected subtotal 5500, got %d", subtotal)
		}
	})

	t.Run("deactivated product silently disappears", func(t *testing.T) {
		c := New(newFakeSession())
		_ = c.Add(1, 1)
		_ = c.Add(3, 2) // inativo

		lines, subtotal, err := c.PriceLines(cat)
		if err != nil {
			t.Fatalf("PriceLines: %v", err)
		}
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Product.ID != 1 {
			t.Fatalf("expected only product 1, got %d", lines[0].Product.ID)
		}
		if subtotal != 1000 {
			t.Fatalf("expected subtotal 1000, got %d", subtotal)
		}
	})
}
