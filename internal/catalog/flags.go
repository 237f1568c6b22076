package catalog

import (
	"fmt"

	"laptop-storefront/internal/models"
)

// Flag identifica una de las marcas de merchandising del producto
type Flag int

const (
	FlagNewArrival Flag = iota + 1
	FlagDeal
	FlagLimitedStock
	FlagTopHighlight
	FlagBottomHighlight
)

// AllFlags en el orden en que aparecen las secciones del home
var AllFlags = []Flag{FlagNewArrival, FlagDeal, FlagLimitedStock, FlagTopHighlight, FlagBottomHighlight}

// ParseFlag convierte la clave del query string (ej. "isDeal") en Flag
func ParseFlag(key string) (Flag, bool) {
	for _, f := range AllFlags {
		if f.Key() == key {
			return f, true
		}
	}
	return 0, false
}

// Key retorna el nombre del campo, igual en JSON, BSON y query string
func (f Flag) Key() string {
	switch f {
	case FlagNewArrival:
		return "isNewArrival"
	case FlagDeal:
		return "isDeal"
	case FlagLimitedStock:
		return "isLimitedStock"
	case FlagTopHighlight:
		return "isTopHighlight"
	case FlagBottomHighlight:
		return "isBottomHighlight"
	}
	return ""
}

func (f Flag) Label() string {
	switch f {
	case FlagNewArrival:
		return "New Arrivals"
	case FlagDeal:
		return "Deals"
	case FlagLimitedStock:
		return "Limited Stock"
	case FlagTopHighlight:
		return "Top Highlights"
	case FlagBottomHighlight:
		return "Bottom Highlights"
	}
	return ""
}

// Of lee el valor de la marca en el producto
func (f Flag) Of(p *models.Product) bool {
	switch f {
	case FlagNewArrival:
		return p.IsNewArrival
	case FlagDeal:
		return p.IsDeal
	case FlagLimitedStock:
		return p.IsLimitedStock
	case FlagTopHighlight:
		return p.IsTopHighlight
	case FlagBottomHighlight:
		return p.IsBottomHighlight
	}
	return false
}

func (f Flag) String() string {
	return f.Key()
}

func (f Flag) MarshalText() ([]byte, error) {
	if f.Key() == "" {
		return nil, fmt.Errorf("unknown flag %d", int(f))
	}
	return []byte(f.Key()), nil
}

func (f *Flag) UnmarshalText(text []byte) error {
	parsed, ok := ParseFlag(string(text))
	if !ok {
		return fmt.Errorf("unknown flag %q", string(text))
	}
	*f = parsed
	return nil
}

// FlagFilter es una casilla del filtro de marcas; si Checked es false no restringe nada
type FlagFilter struct {
	Flag    Flag `json:"key"`
	Checked bool `json:"checked"`
}

// FlagCount cuenta cuántos productos tienen cada marca
func FlagCount(products []models.Product) map[Flag]int {
	counts := make(map[Flag]int, len(AllFlags))
	for i := range products {
		for _, f := range AllFlags {
			if f.Of(&products[i]) {
				counts[f]++
			}
		}
	}
	return counts
}
