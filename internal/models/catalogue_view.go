package models

// TreeNode is a materialized view of one hierarchy level produced by the tree
// builder (categories, nested options)
type TreeNode struct {
	ID            string     `json:"_id"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	ChildrenCount int        `json:"childrenCount"`
	Children      []TreeNode `json:"children,omitempty"`
}

// CatalogueFilterOption is one facet option with its toggle link
type CatalogueFilterOption struct {
	ID         string                  `json:"_id,omitempty"`
	Slug       string                  `json:"slug"`
	Name       string                  `json:"name"`
	Color      string                  `json:"color,omitempty"`
	Counter    int                     `json:"counter"`
	IsSelected bool                    `json:"isSelected"`
	NextHref   string                  `json:"nextHref"`
	Options    []CatalogueFilterOption `json:"options,omitempty"`
}

// CatalogueFilterAttribute is one assembled facet group
type CatalogueFilterAttribute struct {
	Slug       string                  `json:"slug"`
	Name       string                  `json:"name"`
	Metric     string                  `json:"metric,omitempty"`
	Variant    string                  `json:"variant"`
	IsSelected bool                    `json:"isSelected"`
	ClearHref  string                  `json:"clearHref"`
	HasMore    bool                    `json:"hasMore"`
	Options    []CatalogueFilterOption `json:"options"`
}

// SelectedFilter pairs an attribute with its currently selected options. The
// attribute copy carries an emptied option list to keep the footprint small.
type SelectedFilter struct {
	Attribute Attribute `json:"attribute"`
	Options   []Option  `json:"options"`
}

// SnippetFeature is one name/value line of a product card's feature list
type SnippetFeature struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductSnippet is the display-ready projection of one catalogue product
type ProductSnippet struct {
	ID             string           `json:"_id"`
	ItemID         int              `json:"itemId"`
	Slug           string           `json:"slug"`
	Name           string           `json:"name"`
	MainImage      string           `json:"mainImage,omitempty"`
	MinPrice       int              `json:"minPrice"`
	MaxPrice       int              `json:"maxPrice"`
	FormattedPrice string           `json:"formattedPrice"`
	RubricSlug     string           `json:"rubricSlug"`
	BrandSlug      string           `json:"brandSlug,omitempty"`
	ListFeatures   []SnippetFeature `json:"listFeatures,omitempty"`
}

// Pagination is the page math block of a catalogue response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CataloguePage is the full catalogue view model returned per request
type CataloguePage struct {
	Title              string                     `json:"title"`
	RubricSlug         string                     `json:"rubricSlug"`
	Products           []ProductSnippet           `json:"products"`
	Attributes         []CatalogueFilterAttribute `json:"attributes"`
	SelectedAttributes []CatalogueFilterAttribute `json:"selectedAttributes"`
	SelectedFilters    []SelectedFilter           `json:"-"`
	Pagination         Pagination                 `json:"pagination"`
}

// AttributeCountID keys one attribute/option pair of the attributes facet
type AttributeCountID struct {
	AttributeSlug string `bson:"attributeSlug" json:"attributeSlug"`
	OptionSlug    string `bson:"optionSlug" json:"optionSlug"`
}

// AttributeCountEntry is one row of the attributes facet branch
type AttributeCountEntry struct {
	ID    AttributeCountID `bson:"_id" json:"_id"`
	Count int              `bson:"count" json:"count"`
}

// PriceEntry is one distinct minimum price observed in the match set
type PriceEntry struct {
	ID int `bson:"_id" json:"_id"`
}

// SlugEntry is one distinct slug observed in the match set
type SlugEntry struct {
	ID string `bson:"_id" json:"_id"`
}

// BrandFacetEntry is one brand with the collections it contributes in scope
type BrandFacetEntry struct {
	ID          string   `bson:"_id" json:"_id"`
	Collections []string `bson:"collections,omitempty" json:"collections,omitempty"`
}

// CountEntry carries the pre-pagination match total
type CountEntry struct {
	TotalDocs int `bson:"totalDocs" json:"totalDocs"`
}

// CatalogueAggregation is the decoded single-document result of the faceted
// aggregation pipeline
type CatalogueAggregation struct {
	Docs         []Product             `bson:"docs" json:"docs"`
	Prices       []PriceEntry          `bson:"prices" json:"prices"`
	Categories   []SlugEntry           `bson:"categories" json:"categories"`
	Brands       []BrandFacetEntry     `bson:"brands" json:"brands"`
	CountAllDocs []CountEntry          `bson:"countAllDocs" json:"countAllDocs"`
	Attributes   []AttributeCountEntry `bson:"attributes" json:"attributes"`
}

// Total returns the pre-pagination match count
func (a *CatalogueAggregation) Total() int {
	if len(a.CountAllDocs) == 0 {
		return 0
	}
	return a.CountAllDocs[0].TotalDocs
}

// FacetData is the assembler-facing view of the aggregation's facet branches
type FacetData struct {
	OptionCounts  map[string]map[string]int `json:"optionCounts"`
	Prices        []int                     `json:"prices"`
	CategorySlugs []string                  `json:"categorySlugs"`
	Brands        map[string][]string       `json:"brands"`
}

// ToFacetData reshapes the raw facet branches for the assembler
func (a *CatalogueAggregation) ToFacetData() FacetData {
	facet := FacetData{
		OptionCounts: make(map[string]map[string]int, len(a.Attributes)),
		Brands:       make(map[string][]string, len(a.Brands)),
	}
	for _, entry := range a.Attributes {
		byOption := facet.OptionCounts[entry.ID.AttributeSlug]
		if byOption == nil {
			byOption = make(map[string]int)
			facet.OptionCounts[entry.ID.AttributeSlug] = byOption
		}
		byOption[entry.ID.OptionSlug] += entry.Count
	}
	for _, entry := range a.Prices {
		facet.Prices = append(facet.Prices, entry.ID)
	}
	for _, entry := range a.Categories {
		facet.CategorySlugs = append(facet.CategorySlugs, entry.ID)
	}
	for _, entry := range a.Brands {
		facet.Brands[entry.ID] = entry.Collections
	}
	return facet
}
