package services

import (
	"strings"

	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
)

// optionValueSeparator joins multiple selected option names of one attribute
const optionValueSeparator = ", "

// TitleGenerator assembles natural-language catalogue titles from selected
// filters using per-attribute positioning rules. Pure and deterministic.
type TitleGenerator struct {
	localizer *i18n.Localizer
}

// NewTitleGenerator creates a new title generator instance
func NewTitleGenerator(localizer *i18n.Localizer) *TitleGenerator {
	return &TitleGenerator{localizer: localizer}
}

// GenerateTitle renders the catalogue title for the current selection. With
// no selection the localized default title is returned verbatim.
func (g *TitleGenerator) GenerateTitle(selected []models.SelectedFilter, template models.CatalogueTitle, locale string) string {
	if len(selected) == 0 {
		return g.localizer.Resolve(template.DefaultTitleI18n, locale)
	}

	gender := g.resolveGender(selected, template, locale)

	var begin, before, replace, after, end []string
	for _, filter := range selected {
		value := g.renderValue(filter, locale, gender)
		if value == "" {
			continue
		}
		switch filter.Attribute.PositionFor(locale) {
		case models.PositionBegin:
			begin = append(begin, value)
		case models.PositionBeforeKeyword:
			before = append(before, value)
		case models.PositionReplaceKeyword:
			// Multiple replacements accumulate by concatenation
			replace = append(replace, value)
		case models.PositionAfterKeyword:
			after = append(after, value)
		default:
			end = append(end, value)
		}
	}

	keyword := g.localizer.Resolve(template.KeywordI18n, locale)
	if len(replace) > 0 {
		keyword = strings.Join(replace, " ")
	}

	segments := make([]string, 0, len(begin)+len(before)+len(after)+len(end)+2)
	if prefix := g.localizer.Resolve(template.PrefixI18n, locale); prefix != "" {
		segments = append(segments, prefix)
	}
	segments = append(segments, begin...)
	segments = append(segments, before...)
	if keyword != "" {
		segments = append(segments, keyword)
	}
	segments = append(segments, after...)
	segments = append(segments, end...)

	return i18n.CapitalizeFirst(strings.Join(segments, " "))
}

// resolveGender scans replace-keyword filters in iteration order; the first
// selected option carrying a gender tag overrides the template gender.
// First match wins, deliberately.
func (g *TitleGenerator) resolveGender(selected []models.SelectedFilter, template models.CatalogueTitle, locale string) string {
	for _, filter := range selected {
		if filter.Attribute.PositionFor(locale) != models.PositionReplaceKeyword {
			continue
		}
		for _, option := range filter.Options {
			if option.Gender != "" {
				return option.Gender
			}
		}
	}
	return template.Gender
}

// renderValue joins the filter's selected option names, honoring the
// attribute's capitalization flag and gendered variants
func (g *TitleGenerator) renderValue(filter models.SelectedFilter, locale, gender string) string {
	names := make([]string, 0, len(filter.Options))
	for _, option := range filter.Options {
		name := option.NameFor(g.localizer, locale, gender)
		if name == "" {
			continue
		}
		if !filter.Attribute.Capitalise {
			name = strings.ToLower(name)
		}
		names = append(names, name)
	}
	return strings.Join(names, optionValueSeparator)
}
