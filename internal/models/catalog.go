package models

import (
	"github.com/torgmarket/catalog-api/internal/i18n"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Grammatical genders used for name variants and title agreement
const (
	GenderHe  = "he"
	GenderShe = "she"
	GenderIt  = "it"
)

// Attribute view variants (how the filter group renders)
const (
	VariantTagCloud    = "tagCloud"
	VariantList        = "list"
	VariantText        = "text"
	VariantIcon        = "icon"
	VariantOuterRating = "outerRating"
)

// Title positioning rules (per attribute, per locale)
const (
	PositionBegin          = "begin"
	PositionBeforeKeyword  = "beforeKeyword"
	PositionReplaceKeyword = "replaceKeyword"
	PositionAfterKeyword   = "afterKeyword"
	PositionEnd            = "end"
)

// CatalogueTitle is the per-rubric template for dynamic title generation
type CatalogueTitle struct {
	DefaultTitleI18n i18n.Field `bson:"defaultTitleI18n" json:"defaultTitleI18n"`
	PrefixI18n       i18n.Field `bson:"prefixI18n,omitempty" json:"prefixI18n,omitempty"`
	KeywordI18n      i18n.Field `bson:"keywordI18n" json:"keywordI18n"`
	Gender           string     `bson:"gender" json:"gender"`
}

// Rubric is a top-level catalogue vertical scoping attributes and categories
type Rubric struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Slug           string             `bson:"slug" json:"slug"`
	NameI18n       i18n.Field         `bson:"nameI18n" json:"nameI18n"`
	CatalogueTitle CatalogueTitle     `bson:"catalogueTitle" json:"catalogueTitle"`
	Priority       int                `bson:"priority,omitempty" json:"priority,omitempty"`
}

// Attribute is a filterable product characteristic
type Attribute struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Slug               string             `bson:"slug" json:"slug"`
	NameI18n           i18n.Field         `bson:"nameI18n" json:"nameI18n"`
	MetricI18n         i18n.Field         `bson:"metricI18n,omitempty" json:"metricI18n,omitempty"`
	Variant            string             `bson:"variant" json:"variant"`
	PositioningInTitle map[string]string  `bson:"positioningInTitle,omitempty" json:"positioningInTitle,omitempty"`
	Capitalise         bool               `bson:"capitalise,omitempty" json:"capitalise,omitempty"`
	RubricSlugs        []string           `bson:"rubricSlugs,omitempty" json:"rubricSlugs,omitempty"`
	Priority           int                `bson:"priority,omitempty" json:"priority,omitempty"`
	OptionsGroupID     primitive.ObjectID `bson:"optionsGroupId,omitempty" json:"optionsGroupId,omitempty"`
	Options            []Option           `bson:"-" json:"options,omitempty"`
}

// PositionFor returns the attribute's title position for a locale, falling
// back to end-of-title when the rule is missing
func (a *Attribute) PositionFor(locale string) string {
	if position, ok := a.PositioningInTitle[locale]; ok && position != "" {
		return position
	}
	return PositionEnd
}

// Option is one selectable value of an attribute's option group. Options nest
// to arbitrary depth via ParentID; a nil parent marks a group root.
type Option struct {
	ID       primitive.ObjectID    `bson:"_id,omitempty" json:"_id"`
	GroupID  primitive.ObjectID    `bson:"groupId,omitempty" json:"groupId,omitempty"`
	ParentID *primitive.ObjectID   `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Slug     string                `bson:"slug" json:"slug"`
	NameI18n i18n.Field            `bson:"nameI18n" json:"nameI18n"`
	Gender   string                `bson:"gender,omitempty" json:"gender,omitempty"`
	Variants map[string]i18n.Field `bson:"variants,omitempty" json:"variants,omitempty"`
	Color    string                `bson:"color,omitempty" json:"color,omitempty"`
}

// NameFor resolves the option display name, preferring the gendered variant
// when one exists for the requested gender
func (o *Option) NameFor(localizer *i18n.Localizer, locale, gender string) string {
	if gender != "" {
		if variant, ok := o.Variants[gender]; ok {
			if name := localizer.Resolve(variant, locale); name != "" {
				return name
			}
		}
	}
	return localizer.Resolve(o.NameI18n, locale)
}

// Category is a rubric-scoped hierarchical grouping of products
type Category struct {
	ID         primitive.ObjectID    `bson:"_id,omitempty" json:"_id"`
	Slug       string                `bson:"slug" json:"slug"`
	RubricSlug string                `bson:"rubricSlug" json:"rubricSlug"`
	ParentID   *primitive.ObjectID   `bson:"parentId,omitempty" json:"parentId,omitempty"`
	NameI18n   i18n.Field            `bson:"nameI18n" json:"nameI18n"`
	Variants   map[string]i18n.Field `bson:"variants,omitempty" json:"variants,omitempty"`
}

// Brand groups products of one manufacturer; collections are its sub-lines
type Brand struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Slug        string             `bson:"slug" json:"slug"`
	NameI18n    i18n.Field         `bson:"nameI18n" json:"nameI18n"`
	Collections []BrandCollection  `bson:"collections,omitempty" json:"collections,omitempty"`
}

// BrandCollection is a named product line within a brand
type BrandCollection struct {
	Slug     string     `bson:"slug" json:"slug"`
	NameI18n i18n.Field `bson:"nameI18n" json:"nameI18n"`
}

// ProductAttribute records which options of one attribute a product carries
type ProductAttribute struct {
	AttributeSlug string   `bson:"attributeSlug" json:"attributeSlug"`
	OptionSlugs   []string `bson:"optionSlugs" json:"optionSlugs"`
}

// Product is one catalogue document. SelectedOptionsSlugs holds the composite
// attribute-option keys the filter engine matches with $all semantics.
type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ItemID               int                `bson:"itemId" json:"itemId"`
	Slug                 string             `bson:"slug" json:"slug"`
	NameI18n             i18n.Field         `bson:"nameI18n" json:"nameI18n"`
	CardNameI18n         i18n.Field         `bson:"cardNameI18n,omitempty" json:"cardNameI18n,omitempty"`
	RubricSlug           string             `bson:"rubricSlug" json:"rubricSlug"`
	CategorySlugs        []string           `bson:"categorySlugs,omitempty" json:"categorySlugs,omitempty"`
	BrandSlug            string             `bson:"brandSlug,omitempty" json:"brandSlug,omitempty"`
	BrandCollectionSlug  string             `bson:"brandCollectionSlug,omitempty" json:"brandCollectionSlug,omitempty"`
	MainImage            string             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	MinPrice             int                `bson:"minPrice" json:"minPrice"`
	MaxPrice             int                `bson:"maxPrice" json:"maxPrice"`
	Priority             int                `bson:"priority" json:"priority"`
	Attributes           []ProductAttribute `bson:"attributes,omitempty" json:"attributes,omitempty"`
	SelectedOptionsSlugs []string           `bson:"selectedOptionsSlugs,omitempty" json:"selectedOptionsSlugs,omitempty"`
	Rubric               *Rubric            `bson:"rubric,omitempty" json:"rubric,omitempty"`
	SnippetAttributes    []ProductAttribute `bson:"snippetAttributes,omitempty" json:"snippetAttributes,omitempty"`
}

// ShopProduct is a per-shop offer for a product (secondary price lookups)
type ShopProduct struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	ShopID    primitive.ObjectID `bson:"shopId" json:"shopId"`
	Price     int                `bson:"price" json:"price"`
	Available int                `bson:"available" json:"available"`
}
