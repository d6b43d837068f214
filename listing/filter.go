package listing

import (
	"math"
	"strconv"
	"strings"
)

// FilterParams are the raw, optional search query parameters as received from
// the client. All fields may be empty independently.
type FilterParams struct {
	City         string
	MinPrice     string
	MaxPrice     string
	PropertyType string
}

// SearchFilter is the validated, structured predicate consumed by the
// repository. Nil fields impose no constraint.
type SearchFilter struct {
	City         *string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType *PropertyType
}

// BuildFilter translates raw search parameters into a structured filter. It
// is total: a bound that fails to parse as a finite non-negative number is
// dropped rather than failing the request, and an unknown property type is
// dropped the same way. City is an exact-match pass-through with no
// normalization. Min and max are not cross-checked; an inverted range simply
// matches nothing downstream.
func BuildFilter(raw FilterParams) SearchFilter {
	var filter SearchFilter

	if raw.City != "" {
		city := raw.City
		filter.City = &city
	}
	if price, ok := parsePrice(raw.MinPrice); ok {
		filter.MinPrice = &price
	}
	if price, ok := parsePrice(raw.MaxPrice); ok {
		filter.MaxPrice = &price
	}
	if pt := PropertyType(raw.PropertyType); ValidPropertyType(pt) {
		filter.PropertyType = &pt
	}

	return filter
}

// Empty reports whether the filter imposes no constraints.
func (f SearchFilter) Empty() bool {
	return f.City == nil && f.MinPrice == nil && f.MaxPrice == nil && f.PropertyType == nil
}

// CacheKey renders the filter as a canonical string usable as a cache key.
// Absent fields render as "-" so distinct filters never collide.
func (f SearchFilter) CacheKey() string {
	parts := []string{"-", "-", "-", "-"}
	if f.City != nil {
		parts[0] = *f.City
	}
	if f.MinPrice != nil {
		parts[1] = strconv.FormatFloat(*f.MinPrice, 'f', -1, 64)
	}
	if f.MaxPrice != nil {
		parts[2] = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
	}
	if f.PropertyType != nil {
		parts[3] = string(*f.PropertyType)
	}
	return "listings:search:" + strings.Join(parts, "|")
}

func parsePrice(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return price, true
}
