package services

import (
	"strconv"
	"strings"

	"github.com/torgmarket/catalog-api/internal/models"
	"go.uber.org/zap"
)

// FilterCodec decodes catalogue filter paths into typed filter state and
// builds the token lists behind toggle/clear links. Parsing is deliberately
// permissive: filter paths are a public URL surface, so malformed tokens are
// silently dropped here and nowhere else.
type FilterCodec struct {
	defaultLimit int
	logger       *zap.Logger
}

// NewFilterCodec creates a new filter codec instance
func NewFilterCodec(defaultLimit int, logger *zap.Logger) *FilterCodec {
	return &FilterCodec{
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Decode parses an ordered token list into filter state. Tokens without a
// separator or with an empty value are dropped; a token contributes to at
// most one bucket.
func (c *FilterCodec) Decode(tokens []string) *models.FilterState {
	state := &models.FilterState{
		Page:     1,
		Limit:    c.defaultLimit,
		SortDesc: true,
	}

	for _, token := range tokens {
		parts := strings.SplitN(token, models.FilterSeparator, 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		key, value := parts[0], parts[1]

		switch key {
		case models.PageKey:
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				continue
			}
			state.Page = page

		case models.LimitKey:
			limit, err := strconv.Atoi(value)
			if err != nil || limit <= 0 {
				continue
			}
			state.Limit = limit

		case models.SortByKey:
			state.SortBy = value
			state.SortTokens = append(state.SortTokens, token)

		case models.SortDirKey:
			switch value {
			case models.SortDirAsc:
				state.SortDesc = false
			case models.SortDirDesc:
				state.SortDesc = true
			default:
				continue
			}
			state.SortTokens = append(state.SortTokens, token)

		case models.RubricKey:
			state.RubricSlugs = append(state.RubricSlugs, value)

		case models.CategoryKey:
			state.CategorySlugs = append(state.CategorySlugs, value)

		case models.BrandKey:
			state.BrandSlugs = append(state.BrandSlugs, value)

		case models.BrandCollectionKey:
			state.BrandCollectionSlugs = append(state.BrandCollectionSlugs, value)

		case models.PriceKey:
			bucket, ok := models.ParsePriceBucket(value)
			if !ok {
				continue
			}
			min, max := bucket.Min, bucket.Max
			state.MinPrice = &min
			state.MaxPrice = &max

		case models.CommonKey:
			if value != models.NoPhotoOption {
				continue
			}
			state.NoPhoto = true

		default:
			state.AttributeOptions = append(state.AttributeOptions, models.AttributeOption{
				AttributeSlug: key,
				OptionSlug:    value,
			})
		}

		state.Tokens = append(state.Tokens, token)
	}

	return state
}

// Encode serializes filter state back into a token list: reserved buckets
// first, then attribute options in selection order, then the verbatim sort
// tokens. Order-sensitive link construction goes through ToggleOption and
// ClearAttribute instead, which operate on the raw token list.
func (c *FilterCodec) Encode(state *models.FilterState) []string {
	var tokens []string

	for _, slug := range state.RubricSlugs {
		tokens = append(tokens, models.RubricKey+models.FilterSeparator+slug)
	}
	for _, slug := range state.CategorySlugs {
		tokens = append(tokens, models.CategoryKey+models.FilterSeparator+slug)
	}
	for _, slug := range state.BrandSlugs {
		tokens = append(tokens, models.BrandKey+models.FilterSeparator+slug)
	}
	for _, slug := range state.BrandCollectionSlugs {
		tokens = append(tokens, models.BrandCollectionKey+models.FilterSeparator+slug)
	}
	if state.HasPriceRange() {
		bucket := models.PriceBucket{Min: *state.MinPrice, Max: *state.MaxPrice}
		tokens = append(tokens, models.PriceKey+models.FilterSeparator+bucket.Slug())
	}
	for _, selected := range state.AttributeOptions {
		tokens = append(tokens, selected.Token())
	}
	if state.NoPhoto {
		tokens = append(tokens, models.CommonKey+models.FilterSeparator+models.NoPhotoOption)
	}
	tokens = append(tokens, state.SortTokens...)

	return tokens
}

// ToggleOption returns the token list with the given option token removed if
// present, appended otherwise. Every other token keeps its relative order, so
// toggling twice restores the original list.
func (c *FilterCodec) ToggleOption(tokens []string, attributeSlug, optionSlug string) []string {
	target := attributeSlug + models.FilterSeparator + optionSlug

	next := make([]string, 0, len(tokens)+1)
	removed := false
	for _, token := range tokens {
		if token == target {
			removed = true
			continue
		}
		next = append(next, token)
	}
	if !removed {
		next = append(next, target)
	}
	return next
}

// ClearAttribute returns the token list with every token belonging to the
// given attribute removed. Sort tokens always survive clearing.
func (c *FilterCodec) ClearAttribute(tokens []string, attributeSlug string) []string {
	next := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts := strings.SplitN(token, models.FilterSeparator, 2)
		if len(parts) == 2 && parts[0] == attributeSlug &&
			parts[0] != models.SortByKey && parts[0] != models.SortDirKey {
			continue
		}
		next = append(next, token)
	}
	return next
}

// BuildHref joins a base path and token list into a catalogue link
func (c *FilterCodec) BuildHref(basePath string, tokens []string) string {
	if len(tokens) == 0 {
		return basePath
	}
	return basePath + "/" + strings.Join(tokens, "/")
}
