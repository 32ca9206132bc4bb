package i18n

import "strings"

// NotFoundSentinel is the visible marker some call sites prefer over an empty
// string when a field has no translation at all.
const NotFoundSentinel = "{{translation not found}}"

// Field maps a locale code to a translated value.
type Field map[string]string

// Localizer resolves localized fields through a fixed fallback chain:
// requested locale, secondary locale, default locale, empty string. The chain
// is carried explicitly so the engine has no ambient locale state.
type Localizer struct {
	DefaultLocale   string
	SecondaryLocale string
}

// NewLocalizer creates a localizer with the given fallback chain
func NewLocalizer(defaultLocale, secondaryLocale string) *Localizer {
	return &Localizer{
		DefaultLocale:   defaultLocale,
		SecondaryLocale: secondaryLocale,
	}
}

// Resolve returns the field value for locale, falling back along the chain.
// A fully missing field resolves to "" rather than failing.
func (l *Localizer) Resolve(field Field, locale string) string {
	if len(field) == 0 {
		return ""
	}
	for _, candidate := range []string{locale, l.SecondaryLocale, l.DefaultLocale} {
		if candidate == "" {
			continue
		}
		if value, ok := field[candidate]; ok && value != "" {
			return value
		}
	}
	return ""
}

// ResolveOr resolves the field and substitutes the sentinel when every locale
// in the chain is missing
func (l *Localizer) ResolveOr(field Field, locale, sentinel string) string {
	if value := l.Resolve(field, locale); value != "" {
		return value
	}
	return sentinel
}

// CapitalizeFirst upper-cases the first rune of s, leaving the rest untouched
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
