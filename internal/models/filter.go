package models

// FilterSeparator splits a token into key and value at its first occurrence.
// Changing it, or any reserved key, breaks every bookmarked catalogue link.
const FilterSeparator = "-"

// PriceBoundsSeparator splits a price token value into min and max
const PriceBoundsSeparator = "_"

// Reserved token keys
const (
	PageKey            = "page"
	LimitKey           = "limit"
	SortByKey          = "sortBy"
	SortDirKey         = "sortDir"
	RubricKey          = "rubric"
	CategoryKey        = "category"
	BrandKey           = "brand"
	BrandCollectionKey = "collection"
	PriceKey           = "price"
	CommonKey          = "common"
)

// Values of the common namespace
const (
	NoPhotoOption = "no-photo"
)

// Sort token values
const (
	SortDirAsc     = "asc"
	SortDirDesc    = "desc"
	SortByPrice    = "price"
	SortByPriority = "priority"
)

// AttributeOption is one selected attributeSlug/optionSlug pair
type AttributeOption struct {
	AttributeSlug string `json:"attributeSlug"`
	OptionSlug    string `json:"optionSlug"`
}

// Token renders the pair back into its URL token form
func (ao AttributeOption) Token() string {
	return ao.AttributeSlug + FilterSeparator + ao.OptionSlug
}

// FilterState is the decoded form of a catalogue filter path. Tokens keeps
// the original URL order; SortTokens is the subset re-emitted verbatim when
// building "clear" links so sorting survives filter clearing.
type FilterState struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	SortBy   string `json:"sortBy"`
	SortDesc bool   `json:"sortDesc"`

	MinPrice *int `json:"minPrice,omitempty"`
	MaxPrice *int `json:"maxPrice,omitempty"`

	RubricSlugs          []string          `json:"rubricSlugs,omitempty"`
	CategorySlugs        []string          `json:"categorySlugs,omitempty"`
	BrandSlugs           []string          `json:"brandSlugs,omitempty"`
	BrandCollectionSlugs []string          `json:"brandCollectionSlugs,omitempty"`
	AttributeOptions     []AttributeOption `json:"attributeOptions,omitempty"`
	NoPhoto              bool              `json:"noPhoto"`

	Tokens     []string `json:"tokens,omitempty"`
	SortTokens []string `json:"sortTokens,omitempty"`
}

// HasOption reports whether the given attribute/option pair is selected.
// Membership is tested against the accepted token list, so reserved keys
// (category, brand, price, common) answer the same way attribute options do.
func (f *FilterState) HasOption(attributeSlug, optionSlug string) bool {
	token := attributeSlug + FilterSeparator + optionSlug
	for _, accepted := range f.Tokens {
		if accepted == token {
			return true
		}
	}
	return false
}

// HasPriceRange reports whether both price bounds are present
func (f *FilterState) HasPriceRange() bool {
	return f.MinPrice != nil && f.MaxPrice != nil
}

// OptionTokens returns the composite tokens of every selected attribute option
func (f *FilterState) OptionTokens() []string {
	tokens := make([]string, 0, len(f.AttributeOptions))
	for _, selected := range f.AttributeOptions {
		tokens = append(tokens, selected.Token())
	}
	return tokens
}
