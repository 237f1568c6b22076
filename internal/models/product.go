package models

import "time"

// MaxProducts es el tope del catálogo, se valida al crear y al duplicar
const MaxProducts = 80

// MaxPerSection es el máximo de productos por sección del home.
// Marcar más productos no falla, solo se muestran los primeros.
const MaxPerSection = 10

type Category string

const (
	CategoryPremium  Category = "Premium"
	CategoryStandard Category = "Standard"
	CategoryBasic    Category = "Basic"
)

var Categories = []Category{CategoryPremium, CategoryStandard, CategoryBasic}

// Valid indica si la categoría es conocida
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Condition string

const (
	ConditionNew         Condition = "New"
	ConditionLikeNew     Condition = "Like New"
	ConditionRefurbished Condition = "Refurbished"
	ConditionUsed        Condition = "Used"
)

var Conditions = []Condition{ConditionNew, ConditionLikeNew, ConditionRefurbished, ConditionUsed}

// Valid indica si el estado es conocido
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// Product representa una laptop del catálogo. Price está en rupias enteras.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug,omitempty"`
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	ShortSlogan string    `json:"shortSlogan,omitempty"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	Tags        []string  `json:"tags"`
	Price       int64     `json:"price"`
	StockCount  int       `json:"stockCount"`

	IsNewArrival      bool `json:"isNewArrival"`
	IsDeal            bool `json:"isDeal"`
	IsLimitedStock    bool `json:"isLimitedStock"`
	IsTopHighlight    bool `json:"isTopHighlight"`
	IsBottomHighlight bool `json:"isBottomHighlight"`

	FeaturedImage string   `json:"featuredImage"`
	GalleryImages []string `json:"galleryImages"`

	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key retorna el slug, o el ID si el producto no tiene slug
func (p *Product) Key() string {
	if p.Slug != "" {
		return p.Slug
	}
	return p.ID
}

// CoverImage retorna la primera imagen de la galería o la imagen destacada
func (p *Product) CoverImage() string {
	if len(p.GalleryImages) > 0 {
		return p.GalleryImages[0]
	}
	return p.FeaturedImage
}

func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProductInput es el formulario del admin para crear o editar.
// La edición reemplaza todos los campos; ID y fechas nunca vienen del input.
type ProductInput struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	ShortSlogan string    `json:"shortSlogan"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	Tags        []string  `json:"tags"`
	Price       int64     `json:"price"`
	StockCount  int       `json:"stockCount"`

	IsNewArrival      bool `json:"isNewArrival"`
	IsDeal            bool `json:"isDeal"`
	IsLimitedStock    bool `json:"isLimitedStock"`
	IsTopHighlight    bool `json:"isTopHighlight"`
	IsBottomHighlight bool `json:"isBottomHighlight"`

	FeaturedImage string   `json:"featuredImage"`
	GalleryImages []string `json:"galleryImages"`
	Published     bool     `json:"published"`
}

// Apply copia los campos del formulario al producto
func (in *ProductInput) Apply(p *Product) {
	p.Slug = in.Slug
	p.Title = in.Title
	p.Brand = in.Brand
	p.Model = in.Model
	p.ShortSlogan = in.ShortSlogan
	p.Description = in.Description
	p.Category = in.Category
	p.Condition = in.Condition
	p.Tags = in.Tags
	p.Price = in.Price
	p.StockCount = in.StockCount
	p.IsNewArrival = in.IsNewArrival
	p.IsDeal = in.IsDeal
	p.IsLimitedStock = in.IsLimitedStock
	p.IsTopHighlight = in.IsTopHighlight
	p.IsBottomHighlight = in.IsBottomHighlight
	p.FeaturedImage = in.FeaturedImage
	p.GalleryImages = in.GalleryImages
	p.Published = in.Published
}

// ProductStats resume el catálogo para el dashboard
type ProductStats struct {
	Total            int              `json:"total"`
	Published        int              `json:"published"`
	Drafts           int              `json:"drafts"`
	NewArrivals      int              `json:"newArrivals"`
	Deals            int              `json:"deals"`
	LimitedStock     int              `json:"limitedStock"`
	TopHighlights    int              `json:"topHighlights"`
	BottomHighlights int              `json:"bottomHighlights"`
	OutOfStock       int              `json:"outOfStock"`
	LowStock         int              `json:"lowStock"`
	InventoryValue   int64            `json:"inventoryValue"`
	ByCategory       map[Category]int `json:"byCategory"`
	Capacity         int              `json:"capacity"`
	Remaining        int              `json:"remaining"`
}
