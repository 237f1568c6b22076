package catalog

import (
	"sort"

	"laptop-storefront/internal/models"
)

// Rango por defecto del slider de precio cuando no hay productos publicados
const (
	DefaultMinPrice int64 = 0
	DefaultMaxPrice int64 = 200000
)

type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// Facets son las opciones de filtro y los límites de precio
type Facets struct {
	Brands   []BrandCount `json:"brands"`
	Tags     []string     `json:"tags"`
	MinPrice int64        `json:"minPrice"`
	MaxPrice int64        `json:"maxPrice"`
}

// BuildFacets calcula las facetas sobre la lista publicada SIN filtrar,
// así elegir un filtro no reduce las opciones de los otros.
func BuildFacets(published []models.Product) Facets {
	facets := Facets{
		Brands:   []BrandCount{},
		Tags:     []string{},
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
	}
	if len(published) == 0 {
		return facets
	}

	brands := make(map[string]int)
	tags := make(map[string]struct{})
	minPrice, maxPrice := published[0].Price, published[0].Price

	for i := range published {
		p := &published[i]
		if p.Brand != "" {
			brands[p.Brand]++
		}
		for _, t := range p.Tags {
			tags[t] = struct{}{}
		}
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	for b, n := range brands {
		facets.Brands = append(facets.Brands, BrandCount{Brand: b, Count: n})
	}
	sort.Slice(facets.Brands, func(i, j int) bool { return facets.Brands[i].Brand < facets.Brands[j].Brand })

	for t := range tags {
		facets.Tags = append(facets.Tags, t)
	}
	sort.Strings(facets.Tags)

	facets.MinPrice = minPrice
	facets.MaxPrice = maxPrice
	return facets
}
