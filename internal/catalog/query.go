package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"laptop-storefront/internal/models"
)

// Claves del query string de /products
const (
	QueryBrands     = "brands"
	QueryCategory   = "category"
	QueryConditions = "conditions"
	QueryTags       = "tags"
	QueryMinPrice   = "minPrice"
	QueryMaxPrice   = "maxPrice"
	QueryFlags      = "flags"
	QuerySort       = "sort"
)

// ParseQuery lee un FilterSpec desde el query string.
// Las listas aceptan claves repetidas o valores separados por coma.
func ParseQuery(values url.Values) (FilterSpec, error) {
	spec := FilterSpec{
		Brands:     listParam(values, QueryBrands),
		Category:   strings.TrimSpace(values.Get(QueryCategory)),
		Conditions: listParam(values, QueryConditions),
		Tags:       listParam(values, QueryTags),
	}

	if spec.Category != "" && !models.Category(spec.Category).Valid() {
		return FilterSpec{}, models.NewValidationError(QueryCategory, "unknown category %q", spec.Category)
	}
	for _, c := range spec.Conditions {
		if !models.Condition(c).Valid() {
			return FilterSpec{}, models.NewValidationError(QueryConditions, "unknown condition %q", c)
		}
	}

	price, err := parsePriceRange(values)
	if err != nil {
		return FilterSpec{}, err
	}
	spec.Price = price

	for _, key := range listParam(values, QueryFlags) {
		f, ok := ParseFlag(key)
		if !ok {
			return FilterSpec{}, models.NewValidationError(QueryFlags, "unknown flag %q", key)
		}
		spec.Flags = append(spec.Flags, FlagFilter{Flag: f, Checked: true})
	}

	sortBy, ok := ParseSort(values.Get(QuerySort))
	if !ok {
		return FilterSpec{}, models.NewValidationError(QuerySort, "unknown sort %q", values.Get(QuerySort))
	}
	spec.SortBy = sortBy

	return spec, nil
}

// Values serializa el FilterSpec al formato que entiende ParseQuery
func (s FilterSpec) Values() url.Values {
	v := url.Values{}
	setList(v, QueryBrands, s.Brands)
	if s.Category != "" {
		v.Set(QueryCategory, s.Category)
	}
	setList(v, QueryConditions, s.Conditions)
	setList(v, QueryTags, s.Tags)

	if s.Price != nil {
		v.Set(QueryMinPrice, strconv.FormatInt(s.Price.Min, 10))
		if s.Price.Max != math.MaxInt64 {
			v.Set(QueryMaxPrice, strconv.FormatInt(s.Price.Max, 10))
		}
	}

	var flags []string
	for _, f := range s.CheckedFlags() {
		flags = append(flags, f.Key())
	}
	setList(v, QueryFlags, flags)

	if s.SortBy != "" && s.SortBy != SortFeatured {
		v.Set(QuerySort, string(s.SortBy))
	}
	return v
}

func parsePriceRange(values url.Values) (*PriceRange, error) {
	minRaw := strings.TrimSpace(values.Get(QueryMinPrice))
	maxRaw := strings.TrimSpace(values.Get(QueryMaxPrice))
	if minRaw == "" && maxRaw == "" {
		return nil, nil
	}

	r := PriceRange{Min: 0, Max: math.MaxInt64}
	if minRaw != "" {
		n, err := strconv.ParseInt(minRaw, 10, 64)
		if err != nil || n < 0 {
			return nil, models.NewValidationError(QueryMinPrice, "minPrice must be a non-negative integer")
		}
		r.Min = n
	}
	if maxRaw != "" {
		n, err := strconv.ParseInt(maxRaw, 10, 64)
		if err != nil || n < 0 {
			return nil, models.NewValidationError(QueryMaxPrice, "maxPrice must be a non-negative integer")
		}
		r.Max = n
	}

	r = r.Normalize()
	return &r, nil
}

func listParam(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func setList(v url.Values, key string, list []string) {
	if len(list) > 0 {
		v.Set(key, strings.Join(list, ","))
	}
}
