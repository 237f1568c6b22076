package catalog

import (
	"math"
	"strings"

	"laptop-storefront/internal/models"
)

// Refinement son los filtros que la base no puede resolver junto con los de igualdad:
// búsqueda de texto, solapamiento de tags y rango de precio.
type Refinement struct {
	Search   string   `json:"search,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	MinPrice *int64   `json:"minPrice,omitempty"`
	MaxPrice *int64   `json:"maxPrice,omitempty"`
}

// Empty indica si no hace falta la segunda fase
func (r Refinement) Empty() bool {
	return strings.TrimSpace(r.Search) == "" && len(r.Tags) == 0 && r.MinPrice == nil && r.MaxPrice == nil
}

// Refine aplica la fase en memoria sobre el resultado del servidor
func Refine(products []models.Product, r Refinement) []models.Product {
	if r.Empty() {
		return products
	}

	term := strings.ToLower(strings.TrimSpace(r.Search))
	var price *PriceRange
	if r.MinPrice != nil || r.MaxPrice != nil {
		pr := PriceRange{Min: 0, Max: math.MaxInt64}
		if r.MinPrice != nil {
			pr.Min = *r.MinPrice
		}
		if r.MaxPrice != nil {
			pr.Max = *r.MaxPrice
		}
		pr = pr.Normalize()
		price = &pr
	}

	out := make([]models.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if len(r.Tags) > 0 && !overlaps(r.Tags, p.Tags) {
			continue
		}
		if price != nil && !price.Contains(p.Price) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func matchesSearch(p *models.Product, term string) bool {
	fields := []string{p.Title, p.Brand, p.Model, p.Description}
	fields = append(fields, p.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
