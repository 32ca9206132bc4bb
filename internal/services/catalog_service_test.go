package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torgmarket/catalog-api/internal/config"
	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestCatalogService() *CatalogService {
	cfg := &config.Config{
		RubricCollection:         "rubrics",
		CatalogDefaultLimit:      36,
		CatalogMaxVisibleOptions: 5,
		CatalogSnippetAttributes: 3,
		PriceBuckets:             []models.PriceBucket{{Min: 0, Max: 99999}},
	}
	localizer := i18n.NewLocalizer("ru", "en")
	return NewCatalogService(nil, nil, &stubSearcher{}, localizer, cfg, zap.NewNop())
}

func TestNewCatalogService(t *testing.T) {
	service := newTestCatalogService()

	require.NotNil(t, service)
	assert.NotNil(t, service.codec)
	assert.NotNil(t, service.resolver)
	assert.NotNil(t, service.pipeline)
	assert.NotNil(t, service.assembler)
	assert.NotNil(t, service.titles)
	assert.NotNil(t, service.trees)
	assert.Nil(t, service.database)
	assert.Nil(t, service.cache)
}

func TestCatalogService_EmptyPage(t *testing.T) {
	service := newTestCatalogService()
	rubric := &models.Rubric{
		Slug: "fotoapparaty",
		CatalogueTitle: models.CatalogueTitle{
			DefaultTitleI18n: i18n.Field{"ru": "Купить фотоаппараты"},
		},
	}
	state := service.codec.Decode([]string{"page-3", "limit-12"})

	page := service.emptyPage(rubric, state, "ru")

	assert.Equal(t, "Купить фотоаппараты", page.Title)
	assert.Equal(t, "fotoapparaty", page.RubricSlug)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Attributes)
	assert.Empty(t, page.Attributes)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 12, page.Pagination.Limit)
	assert.Equal(t, 0, page.Pagination.Total)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestCatalogService_CacheKey(t *testing.T) {
	service := newTestCatalogService()

	plain := service.cacheKey(CatalogueRequest{
		RubricSlug: "fotoapparaty",
		Locale:     "ru",
	})
	filtered := service.cacheKey(CatalogueRequest{
		RubricSlug: "fotoapparaty",
		Filters:    []string{"brand-canon", "page-2"},
		Locale:     "ru",
	})
	searched := service.cacheKey(CatalogueRequest{
		RubricSlug: "fotoapparaty",
		Filters:    []string{"brand-canon", "page-2"},
		Search:     "eos",
		Locale:     "ru",
	})

	assert.NotEqual(t, plain, filtered)
	assert.NotEqual(t, filtered, searched)
	assert.Equal(t, "catalogue:ru:fotoapparaty:brand-canon/page-2:eos", searched)
}

func TestCatalogService_BuildSnippets(t *testing.T) {
	previous := config.AppConfig
	config.AppConfig = &config.Config{CatalogSnippetAttributes: 2}
	defer func() { config.AppConfig = previous }()

	service := newTestCatalogService()
	product := models.Product{
		ID:           primitive.NewObjectID(),
		ItemID:       1001,
		Slug:         "canon-eos-r6",
		NameI18n:     i18n.Field{"ru": "Фотоаппарат Canon EOS R6"},
		CardNameI18n: i18n.Field{"ru": "Canon EOS R6"},
		RubricSlug:   "fotoapparaty",
		BrandSlug:    "canon",
		MinPrice:     215000,
		MaxPrice:     239000,
		Attributes: []models.ProductAttribute{
			{AttributeSlug: "tsvet", OptionSlugs: []string{"chernyj"}},
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"full-frame"}},
			{AttributeSlug: "unknown", OptionSlugs: []string{"x"}},
		},
	}
	optionIndex := map[string]map[string]models.Option{
		"tip-matritsy": {"full-frame": {Slug: "full-frame", NameI18n: i18n.Field{"ru": "полнокадровая"}}},
		"tsvet":        {"chernyj": {Slug: "chernyj", NameI18n: i18n.Field{"ru": "чёрный"}}},
	}
	priorityIndex := map[string]int{"tip-matritsy": 0, "tsvet": 1}

	snippets := service.buildSnippets([]models.Product{product}, optionIndex, priorityIndex, "ru")

	require.Len(t, snippets, 1)
	snippet := snippets[0]
	assert.Equal(t, "Canon EOS R6", snippet.Name)
	assert.Equal(t, "215 000 — 239 000", snippet.FormattedPrice)
	require.Len(t, snippet.ListFeatures, 2)
	// Features follow the rubric's attribute priority, not document order
	assert.Equal(t, "tip-matritsy", snippet.ListFeatures[0].Name)
	assert.Equal(t, "полнокадровая", snippet.ListFeatures[0].Value)
	assert.Equal(t, "tsvet", snippet.ListFeatures[1].Name)
}

func TestCatalogService_BuildSnippets_NameFallback(t *testing.T) {
	previous := config.AppConfig
	config.AppConfig = &config.Config{CatalogSnippetAttributes: 3}
	defer func() { config.AppConfig = previous }()

	service := newTestCatalogService()
	product := models.Product{
		ID:       primitive.NewObjectID(),
		Slug:     "no-card-name",
		NameI18n: i18n.Field{"ru": "Полное имя"},
	}

	snippets := service.buildSnippets([]models.Product{product}, nil, nil, "ru")

	require.Len(t, snippets, 1)
	assert.Equal(t, "Полное имя", snippets[0].Name)
}

func TestCatalogService_AttributeRank(t *testing.T) {
	service := newTestCatalogService()
	priorityIndex := map[string]int{"a": 0, "b": 1}

	assert.Equal(t, 0, service.attributeRank("a", priorityIndex))
	assert.Equal(t, 1, service.attributeRank("b", priorityIndex))
	assert.Equal(t, 3, service.attributeRank("missing", priorityIndex))
}
