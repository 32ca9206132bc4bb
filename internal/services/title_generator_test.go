package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
)

func newTestTitleGenerator() *TitleGenerator {
	return NewTitleGenerator(i18n.NewLocalizer("ru", "en"))
}

func cameraTitleTemplate() models.CatalogueTitle {
	return models.CatalogueTitle{
		DefaultTitleI18n: i18n.Field{"ru": "Купить фотоаппараты"},
		PrefixI18n:       i18n.Field{"ru": "купить"},
		KeywordI18n:      i18n.Field{"ru": "фотоаппараты"},
		Gender:           models.GenderHe,
	}
}

func TestTitleGenerator_DefaultTitleWithoutSelection(t *testing.T) {
	generator := newTestTitleGenerator()

	title := generator.GenerateTitle(nil, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить фотоаппараты", title)
}

func TestTitleGenerator_BeforeKeyword(t *testing.T) {
	generator := newTestTitleGenerator()
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{
				Slug:               "proizvoditel",
				Capitalise:         true,
				PositioningInTitle: map[string]string{"ru": models.PositionBeforeKeyword},
			},
			Options: []models.Option{
				{Slug: "canon", NameI18n: i18n.Field{"ru": "Canon"}},
			},
		},
	}

	title := generator.GenerateTitle(selected, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить Canon фотоаппараты", title)
}

func TestTitleGenerator_ReplaceKeyword(t *testing.T) {
	generator := newTestTitleGenerator()
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{
				Slug:               "tip",
				PositioningInTitle: map[string]string{"ru": models.PositionReplaceKeyword},
			},
			Options: []models.Option{
				{Slug: "zerkalnye", NameI18n: i18n.Field{"ru": "зеркальные фотоаппараты"}},
			},
		},
	}

	title := generator.GenerateTitle(selected, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить зеркальные фотоаппараты", title)
}

func TestTitleGenerator_AllSlots(t *testing.T) {
	generator := newTestTitleGenerator()
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{
				Slug:               "sostoyanie",
				PositioningInTitle: map[string]string{"ru": models.PositionBegin},
			},
			Options: []models.Option{{Slug: "novye", NameI18n: i18n.Field{"ru": "новые"}}},
		},
		{
			Attribute: models.Attribute{
				Slug:               "proizvoditel",
				Capitalise:         true,
				PositioningInTitle: map[string]string{"ru": models.PositionBeforeKeyword},
			},
			Options: []models.Option{{Slug: "canon", NameI18n: i18n.Field{"ru": "Canon"}}},
		},
		{
			Attribute: models.Attribute{
				Slug:               "tsvet",
				PositioningInTitle: map[string]string{"ru": models.PositionAfterKeyword},
			},
			Options: []models.Option{{Slug: "chernyj", NameI18n: i18n.Field{"ru": "чёрный"}}},
		},
		{
			Attribute: models.Attribute{
				Slug: "dostavka",
			},
			Options: []models.Option{{Slug: "besplatno", NameI18n: i18n.Field{"ru": "с бесплатной доставкой"}}},
		},
	}

	title := generator.GenerateTitle(selected, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить новые Canon фотоаппараты чёрный с бесплатной доставкой", title)
}

func TestTitleGenerator_MultipleOptionsJoined(t *testing.T) {
	generator := newTestTitleGenerator()
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{
				Slug:               "proizvoditel",
				Capitalise:         true,
				PositioningInTitle: map[string]string{"ru": models.PositionBeforeKeyword},
			},
			Options: []models.Option{
				{Slug: "canon", NameI18n: i18n.Field{"ru": "Canon"}},
				{Slug: "nikon", NameI18n: i18n.Field{"ru": "Nikon"}},
			},
		},
	}

	title := generator.GenerateTitle(selected, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить Canon, Nikon фотоаппараты", title)
}

func TestTitleGenerator_LowercasesWithoutCapitaliseFlag(t *testing.T) {
	generator := newTestTitleGenerator()
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{
				Slug:               "tsvet",
				PositioningInTitle: map[string]string{"ru": models.PositionAfterKeyword},
			},
			Options: []models.Option{{Slug: "chernyj", NameI18n: i18n.Field{"ru": "Чёрный"}}},
		},
	}

	title := generator.GenerateTitle(selected, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить фотоаппараты чёрный", title)
}

func TestTitleGenerator_GenderOverrideFirstMatchWins(t *testing.T) {
	generator := newTestTitleGenerator()
	template := models.CatalogueTitle{
		DefaultTitleI18n: i18n.Field{"ru": "Купить камеры"},
		PrefixI18n:       i18n.Field{"ru": "купить"},
		KeywordI18n:      i18n.Field{"ru": "камеры"},
		Gender:           models.GenderShe,
	}
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{
				Slug:               "tip",
				PositioningInTitle: map[string]string{"ru": models.PositionReplaceKeyword},
			},
			Options: []models.Option{
				{Slug: "obektiv", NameI18n: i18n.Field{"ru": "объективы"}, Gender: models.GenderHe},
				{Slug: "vspyshka", NameI18n: i18n.Field{"ru": "вспышки"}, Gender: models.GenderShe},
			},
		},
		{
			Attribute: models.Attribute{
				Slug:               "tsvet",
				PositioningInTitle: map[string]string{"ru": models.PositionAfterKeyword},
			},
			Options: []models.Option{
				{
					Slug:     "chernyj",
					NameI18n: i18n.Field{"ru": "чёрная"},
					Variants: map[string]i18n.Field{
						models.GenderHe: {"ru": "чёрный"},
					},
				},
			},
		},
	}

	title := generator.GenerateTitle(selected, template, "ru")

	// The first replace-keyword option carries "he", so the color agrees
	assert.Equal(t, "Купить объективы, вспышки чёрный", title)
}

func TestTitleGenerator_EmptyOptionNamesSkipped(t *testing.T) {
	generator := newTestTitleGenerator()
	selected := []models.SelectedFilter{
		{
			Attribute: models.Attribute{Slug: "tsvet"},
			Options:   []models.Option{{Slug: "chernyj"}},
		},
	}

	title := generator.GenerateTitle(selected, cameraTitleTemplate(), "ru")

	assert.Equal(t, "Купить фотоаппараты", title)
}
