package models

import (
	"strconv"
	"strings"
)

// PriceBucket is one static price range of the price facet. Bounds are
// inclusive on both ends.
type PriceBucket struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Slug renders the bucket's synthetic option slug, "min_max"
func (b PriceBucket) Slug() string {
	return strconv.Itoa(b.Min) + PriceBoundsSeparator + strconv.Itoa(b.Max)
}

// Contains reports whether price falls inside the bucket, bounds included
func (b PriceBucket) Contains(price int) bool {
	return price >= b.Min && price <= b.Max
}

// ParsePriceBucket decodes a "min_max" slug. Both halves must be numeric and
// the bounds must not be reversed.
func ParsePriceBucket(slug string) (PriceBucket, bool) {
	parts := strings.SplitN(slug, PriceBoundsSeparator, 2)
	if len(parts) != 2 {
		return PriceBucket{}, false
	}
	min, err := strconv.Atoi(parts[0])
	if err != nil {
		return PriceBucket{}, false
	}
	max, err := strconv.Atoi(parts[1])
	if err != nil {
		return PriceBucket{}, false
	}
	if min > max {
		return PriceBucket{}, false
	}
	return PriceBucket{Min: min, Max: max}, true
}
