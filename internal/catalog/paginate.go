package catalog

import "laptop-storefront/internal/models"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

type Page struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// Paginate corta la lista ya filtrada. page empieza en 1; un page fuera de rango retorna Items vacío.
func Paginate(products []models.Product, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(products)
	result := Page{
		Items:      []models.Product{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	// se compara antes de multiplicar para no desbordar con page enorme
	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	result.Items = products[start:end]
	return result
}
