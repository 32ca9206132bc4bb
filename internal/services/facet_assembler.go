package services

import (
	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
	"go.uber.org/zap"
)

// Synthetic attribute names, keyed by the reserved token key they filter on
var (
	categoryAttributeName   = i18n.Field{"ru": "Категории", "en": "Categories"}
	priceAttributeName      = i18n.Field{"ru": "Цена", "en": "Price"}
	brandAttributeName      = i18n.Field{"ru": "Производитель", "en": "Brand"}
	collectionAttributeName = i18n.Field{"ru": "Коллекция", "en": "Collection"}
	commonAttributeName     = i18n.Field{"ru": "Общие", "en": "Common"}
	noPhotoOptionName       = i18n.Field{"ru": "Без фото", "en": "No photo"}
)

// AssembledFacets is the assembler's full output: the navigable attribute
// list, the selected-only view, and the selected filters feeding the title
// generator.
type AssembledFacets struct {
	Attributes      []models.CatalogueFilterAttribute
	Selected        []models.CatalogueFilterAttribute
	SelectedFilters []models.SelectedFilter
}

// FacetAssembler merges attribute catalogues with per-option occurrence data
// into the filter view model. A pure, total pass: absent occurrence data
// yields empty attribute lists, never errors.
type FacetAssembler struct {
	codec             *FilterCodec
	localizer         *i18n.Localizer
	priceBuckets      []models.PriceBucket
	maxVisibleOptions int
	logger            *zap.Logger
}

// NewFacetAssembler creates a new facet assembler instance
func NewFacetAssembler(codec *FilterCodec, localizer *i18n.Localizer, priceBuckets []models.PriceBucket, maxVisibleOptions int, logger *zap.Logger) *FacetAssembler {
	return &FacetAssembler{
		codec:             codec,
		localizer:         localizer,
		priceBuckets:      priceBuckets,
		maxVisibleOptions: maxVisibleOptions,
		logger:            logger,
	}
}

// Assemble walks the prioritized attribute list and emits every attribute
// that keeps at least one supported option. Options failing the occurrence
// test are dropped before emission, not hidden.
func (a *FacetAssembler) Assemble(attributes []models.Attribute, facet models.FacetData, state *models.FilterState, locale, basePath string) *AssembledFacets {
	result := &AssembledFacets{}

	for _, attribute := range attributes {
		assembled, selectedOptions, ok := a.assembleAttribute(attribute, facet, state, locale, basePath)
		if !ok {
			continue
		}
		result.Attributes = append(result.Attributes, assembled)

		if len(selectedOptions) == 0 {
			continue
		}

		selectedView := assembled
		selectedView.Options = a.selectedOnly(assembled.Options)
		result.Selected = append(result.Selected, selectedView)

		// The attribute copy travels without its option list to avoid
		// circular bloat in the title path
		attributeCopy := attribute
		attributeCopy.Options = nil
		result.SelectedFilters = append(result.SelectedFilters, models.SelectedFilter{
			Attribute: attributeCopy,
			Options:   selectedOptions,
		})
	}

	return result
}

// assembleAttribute emits one facet group; ok is false when no option
// survives the occurrence test
func (a *FacetAssembler) assembleAttribute(attribute models.Attribute, facet models.FacetData, state *models.FilterState, locale, basePath string) (models.CatalogueFilterAttribute, []models.Option, bool) {
	counts := facet.OptionCounts[attribute.Slug]

	childIndex := make(map[string][]int, len(attribute.Options))
	presentIDs := make(map[string]bool, len(attribute.Options))
	for _, option := range attribute.Options {
		if !option.ID.IsZero() {
			presentIDs[option.ID.Hex()] = true
		}
	}
	var rootIndexes []int
	for i, option := range attribute.Options {
		if option.ParentID != nil && presentIDs[option.ParentID.Hex()] {
			childIndex[option.ParentID.Hex()] = append(childIndex[option.ParentID.Hex()], i)
			continue
		}
		rootIndexes = append(rootIndexes, i)
	}

	var selected []models.Option
	options := a.assembleOptions(attribute, rootIndexes, childIndex, counts, facet, state, locale, basePath, &selected)
	if len(options) == 0 {
		return models.CatalogueFilterAttribute{}, nil, false
	}

	hasMore := false
	if a.maxVisibleOptions > 0 && len(options) > a.maxVisibleOptions {
		options = options[:a.maxVisibleOptions]
		hasMore = true
	}

	clearTokens := a.codec.ClearAttribute(state.Tokens, attribute.Slug)
	assembled := models.CatalogueFilterAttribute{
		Slug:       attribute.Slug,
		Name:       a.localizer.Resolve(attribute.NameI18n, locale),
		Metric:     a.localizer.Resolve(attribute.MetricI18n, locale),
		Variant:    attribute.Variant,
		IsSelected: len(selected) > 0,
		ClearHref:  a.codec.BuildHref(basePath, clearTokens),
		HasMore:    hasMore,
		Options:    options,
	}
	return assembled, selected, true
}

// assembleOptions emits one nesting level. A parent with no direct support
// survives when any of its children do.
func (a *FacetAssembler) assembleOptions(attribute models.Attribute, indexes []int, childIndex map[string][]int, counts map[string]int, facet models.FacetData, state *models.FilterState, locale, basePath string, selected *[]models.Option) []models.CatalogueFilterOption {
	options := make([]models.CatalogueFilterOption, 0, len(indexes))

	for _, i := range indexes {
		option := attribute.Options[i]
		var childIndexes []int
		if !option.ID.IsZero() {
			childIndexes = childIndex[option.ID.Hex()]
		}
		children := a.assembleOptions(attribute, childIndexes, childIndex, counts, facet, state, locale, basePath, selected)

		counter, supported := a.optionSupport(attribute, option, counts, facet)
		if !supported && len(children) == 0 {
			continue
		}

		isSelected := state.HasOption(attribute.Slug, option.Slug)
		nextTokens := a.codec.ToggleOption(state.Tokens, attribute.Slug, option.Slug)

		optionID := ""
		if !option.ID.IsZero() {
			optionID = option.ID.Hex()
		}
		options = append(options, models.CatalogueFilterOption{
			ID:         optionID,
			Slug:       option.Slug,
			Name:       option.NameFor(a.localizer, locale, ""),
			Color:      option.Color,
			Counter:    counter,
			IsSelected: isSelected,
			NextHref:   a.codec.BuildHref(basePath, nextTokens),
			Options:    children,
		})

		if isSelected {
			*selected = append(*selected, option)
		}
	}

	return options
}

// optionSupport decides whether an option has backing in the current result
// set. Price options are bucket-tested against observed minimum prices; every
// other option requires a positive occurrence count.
func (a *FacetAssembler) optionSupport(attribute models.Attribute, option models.Option, counts map[string]int, facet models.FacetData) (int, bool) {
	if attribute.Slug == models.PriceKey {
		bucket, ok := models.ParsePriceBucket(option.Slug)
		if !ok {
			return 0, false
		}
		counter := 0
		for _, price := range facet.Prices {
			if bucket.Contains(price) {
				counter++
			}
		}
		return counter, counter > 0
	}

	counter := counts[option.Slug]
	return counter, counter > 0
}

// selectedOnly prunes an assembled option tree down to selected entries and
// the parents leading to them
func (a *FacetAssembler) selectedOnly(options []models.CatalogueFilterOption) []models.CatalogueFilterOption {
	var kept []models.CatalogueFilterOption
	for _, option := range options {
		children := a.selectedOnly(option.Options)
		if !option.IsSelected && len(children) == 0 {
			continue
		}
		pruned := option
		pruned.Options = children
		kept = append(kept, pruned)
	}
	return kept
}

// BuildPriceAttribute creates the synthetic price facet over the static
// bucket table. Present whenever any priced product is in scope.
func (a *FacetAssembler) BuildPriceAttribute() models.Attribute {
	attribute := models.Attribute{
		Slug:     models.PriceKey,
		NameI18n: priceAttributeName,
		Variant:  models.VariantList,
	}
	for _, bucket := range a.priceBuckets {
		attribute.Options = append(attribute.Options, models.Option{
			Slug:     bucket.Slug(),
			NameI18n: i18n.Field{"ru": bucket.Slug(), "en": bucket.Slug()},
		})
	}
	return attribute
}

// BuildCategoryAttribute creates the synthetic category facet from the
// rubric's category list; hierarchy is preserved through parent references
func (a *FacetAssembler) BuildCategoryAttribute(categories []models.Category) models.Attribute {
	attribute := models.Attribute{
		Slug:     models.CategoryKey,
		NameI18n: categoryAttributeName,
		Variant:  models.VariantList,
	}
	for _, category := range categories {
		attribute.Options = append(attribute.Options, models.Option{
			ID:       category.ID,
			ParentID: category.ParentID,
			Slug:     category.Slug,
			NameI18n: category.NameI18n,
			Variants: category.Variants,
		})
	}
	return attribute
}

// BuildBrandAttribute creates the synthetic brand facet. Collections nest
// under their brand as child options and toggle through their own token key,
// so they are emitted as a sibling attribute instead when selected.
func (a *FacetAssembler) BuildBrandAttribute(brands []models.Brand) models.Attribute {
	attribute := models.Attribute{
		Slug:     models.BrandKey,
		NameI18n: brandAttributeName,
		Variant:  models.VariantList,
	}
	for _, brand := range brands {
		attribute.Options = append(attribute.Options, models.Option{
			ID:       brand.ID,
			Slug:     brand.Slug,
			NameI18n: brand.NameI18n,
		})
	}
	return attribute
}

// BuildCollectionAttribute creates the brand-collection facet from the brands
// in scope
func (a *FacetAssembler) BuildCollectionAttribute(brands []models.Brand) models.Attribute {
	attribute := models.Attribute{
		Slug:     models.BrandCollectionKey,
		NameI18n: collectionAttributeName,
		Variant:  models.VariantList,
	}
	for _, brand := range brands {
		for _, collection := range brand.Collections {
			attribute.Options = append(attribute.Options, models.Option{
				Slug:     collection.Slug,
				NameI18n: collection.NameI18n,
			})
		}
	}
	return attribute
}

// BuildCommonAttribute creates the common boolean-flag facet
func (a *FacetAssembler) BuildCommonAttribute() models.Attribute {
	return models.Attribute{
		Slug:     models.CommonKey,
		NameI18n: commonAttributeName,
		Variant:  models.VariantList,
		Options: []models.Option{
			{
				Slug:     models.NoPhotoOption,
				NameI18n: noPhotoOptionName,
			},
		},
	}
}
