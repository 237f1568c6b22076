package catalog

import (
	"laptop-storefront/internal/models"
)

// SortOption selecciona el único comparador activo
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortNewest    SortOption = "newest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortName      SortOption = "name"
)

// ParseSort acepta "" como featured
func ParseSort(s string) (SortOption, bool) {
	switch SortOption(s) {
	case "", SortFeatured:
		return SortFeatured, true
	case SortNewest, SortPriceLow, SortPriceHigh, SortName:
		return SortOption(s), true
	}
	return "", false
}

// PriceRange es un rango inclusivo en rupias
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Normalize intercambia los límites si Min > Max
func (r PriceRange) Normalize() PriceRange {
	if r.Min > r.Max {
		return PriceRange{Min: r.Max, Max: r.Min}
	}
	return r
}

func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterSpec describe el filtro y orden del listado del catálogo.
// Los filtros se combinan con AND; dentro de un mismo filtro los valores se combinan con OR,
// salvo Flags donde todas las marcas activas son obligatorias.
type FilterSpec struct {
	Brands     []string     `json:"brands"`
	Category   string       `json:"category"`
	Conditions []string     `json:"conditions"`
	Tags       []string     `json:"tags"`
	Price      *PriceRange  `json:"priceRange,omitempty"`
	Flags      []FlagFilter `json:"flags"`
	SortBy     SortOption   `json:"sortBy"`
}

// CheckedFlags retorna solo las marcas activas
func (s FilterSpec) CheckedFlags() []Flag {
	var flags []Flag
	for _, ff := range s.Flags {
		if ff.Checked {
			flags = append(flags, ff.Flag)
		}
	}
	return flags
}

// Matches evalúa todos los filtros sobre un producto
func (s FilterSpec) Matches(p *models.Product) bool {
	if len(s.Brands) > 0 && !contains(s.Brands, p.Brand) {
		return false
	}
	if s.Category != "" && string(p.Category) != s.Category {
		return false
	}
	if len(s.Conditions) > 0 && !contains(s.Conditions, string(p.Condition)) {
		return false
	}
	if len(s.Tags) > 0 && !overlaps(s.Tags, p.Tags) {
		return false
	}
	if s.Price != nil && !s.Price.Normalize().Contains(p.Price) {
		return false
	}
	for _, ff := range s.Flags {
		if ff.Checked && !ff.Flag.Of(p) {
			return false
		}
	}
	return true
}

// Filter retorna los productos que cumplen el filtro, en el mismo orden.
// El slice de entrada no se modifica.
func Filter(products []models.Product, spec FilterSpec) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if spec.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// Apply filtra y luego ordena
func Apply(products []models.Product, spec FilterSpec) []models.Product {
	return Sort(Filter(products, spec), spec.SortBy)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(want, have []string) bool {
	for _, t := range want {
		if contains(have, t) {
			return true
		}
	}
	return false
}
