package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"laptop-storefront/internal/models"
)

// Sort retorna una copia ordenada. featured (o una opción desconocida) conserva el orden de entrada.
func Sort(products []models.Product, by SortOption) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch by {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortName:
		// collate.Collator no es seguro entre goroutines, se crea uno por llamada
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}
