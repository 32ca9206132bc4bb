package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/torgmarket/catalog-api/internal/config"
	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
	"github.com/torgmarket/catalog-api/internal/observability"
	"github.com/torgmarket/catalog-api/internal/redisclient"
	"github.com/torgmarket/catalog-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CatalogService runs the catalogue end to end: decode filters, resolve
// predicates, execute the faceted aggregation, assemble the view model.
// Everything is request-scoped; no state survives between calls.
type CatalogService struct {
	database  *mongo.Database
	cache     *redisclient.Client
	codec     *FilterCodec
	resolver  *QueryResolver
	pipeline  *PipelineBuilder
	assembler *FacetAssembler
	titles    *TitleGenerator
	trees     *TreeBuilder
	localizer *i18n.Localizer
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(database *mongo.Database, cache *redisclient.Client, searcher Searcher, localizer *i18n.Localizer, cfg *config.Config, logger *zap.Logger) *CatalogService {
	codec := NewFilterCodec(cfg.CatalogDefaultLimit, logger)
	return &CatalogService{
		database:  database,
		cache:     cache,
		codec:     codec,
		resolver:  NewQueryResolver(searcher, logger),
		pipeline:  NewPipelineBuilder(cfg.RubricCollection, cfg.CatalogSnippetAttributes),
		assembler: NewFacetAssembler(codec, localizer, cfg.PriceBuckets, cfg.CatalogMaxVisibleOptions, logger),
		titles:    NewTitleGenerator(localizer),
		trees:     NewTreeBuilder(localizer),
		localizer: localizer,
		logger:    logger,
	}
}

// Global catalog service instance
var CatalogServiceInstance *CatalogService

// InitCatalogService initializes the global catalog service instance
func InitCatalogService() {
	logger := zap.L().Named("catalog_service")

	searcher := NewSearchService(config.Elasticsearch, config.AppConfig.ElasticsearchIndex, logger)
	localizer := i18n.NewLocalizer(config.AppConfig.DefaultLocale, config.AppConfig.SecondaryLocale)

	CatalogServiceInstance = NewCatalogService(config.MongoDB, config.Redis, searcher, localizer, config.AppConfig, logger)

	logger.Info("catalog service initialized successfully")
}

// CatalogueRequest carries one catalogue page request
type CatalogueRequest struct {
	RubricSlug string
	Filters    []string
	Search     string
	Locale     string
	BasePath   string
}

// GetCataloguePage builds the full catalogue view model for a filter path.
// Upstream failures are converted into a well-formed empty fallback page; the
// only error surfaced to the caller is rubric not-found.
func (s *CatalogService) GetCataloguePage(ctx context.Context, req CatalogueRequest) (*models.CataloguePage, error) {
	state := s.codec.Decode(req.Filters)

	rubric, err := s.findRubric(ctx, req.RubricSlug)
	if err != nil {
		return nil, err
	}

	if page := s.cachedPage(ctx, req); page != nil {
		return page, nil
	}

	fragments, err := s.resolver.Resolve(ctx, state, req.Search, nil)
	if err != nil {
		s.logger.Error("failed to resolve query fragments, serving fallback page",
			zap.String("rubric", req.RubricSlug),
			zap.Error(err))
		return s.emptyPage(rubric, state, req.Locale), nil
	}

	// Zero search candidates guarantee an empty match set; skip the
	// aggregation entirely
	if fragments.NoResults {
		return s.emptyPage(rubric, state, req.Locale), nil
	}
	// The route rubric scopes the page unless rubric tokens already did
	if _, ok := fragments.Match["rubricSlug"]; !ok {
		fragments.Match["rubricSlug"] = rubric.Slug
	}

	aggregation, err := s.runAggregation(ctx, fragments.Match, state)
	if err != nil {
		s.logger.Error("catalogue aggregation failed, serving fallback page",
			zap.String("rubric", req.RubricSlug),
			zap.Error(err))
		observability.DatabaseOperations.WithLabelValues("aggregate", "error").Inc()
		return s.emptyPage(rubric, state, req.Locale), nil
	}
	observability.DatabaseOperations.WithLabelValues("aggregate", "success").Inc()

	facet := aggregation.ToFacetData()

	attributes, optionIndex, priorityIndex, err := s.loadRubricAttributes(ctx, rubric.Slug)
	if err != nil {
		s.logger.Error("failed to load rubric attributes, serving fallback page",
			zap.String("rubric", req.RubricSlug),
			zap.Error(err))
		return s.emptyPage(rubric, state, req.Locale), nil
	}

	allAttributes, err := s.withSyntheticAttributes(ctx, rubric, attributes, &facet, aggregation.Total())
	if err != nil {
		s.logger.Error("failed to build synthetic attributes, serving fallback page",
			zap.String("rubric", req.RubricSlug),
			zap.Error(err))
		return s.emptyPage(rubric, state, req.Locale), nil
	}

	assembled := s.assembler.Assemble(allAttributes, facet, state, req.Locale, req.BasePath)

	s.resolveShopPrices(ctx, aggregation.Docs)
	snippets := s.buildSnippets(aggregation.Docs, optionIndex, priorityIndex, req.Locale)

	page := &models.CataloguePage{
		Title:              s.titles.GenerateTitle(assembled.SelectedFilters, rubric.CatalogueTitle, req.Locale),
		RubricSlug:         rubric.Slug,
		Products:           snippets,
		Attributes:         assembled.Attributes,
		SelectedAttributes: assembled.Selected,
		SelectedFilters:    assembled.SelectedFilters,
		Pagination: models.Pagination{
			Page:       state.Page,
			Limit:      state.Limit,
			Total:      aggregation.Total(),
			TotalPages: TotalPages(aggregation.Total(), state.Limit),
		},
	}

	s.storePage(ctx, req, page)

	s.logger.Debug("catalogue page assembled",
		zap.String("rubric", rubric.Slug),
		zap.Int("total", page.Pagination.Total),
		zap.Int("products", len(page.Products)),
		zap.Int("attributes", len(page.Attributes)))

	return page, nil
}

// GetCategoryTree returns the rubric's category hierarchy as sorted nodes
func (s *CatalogService) GetCategoryTree(ctx context.Context, rubricSlug, locale, gender string) ([]models.TreeNode, error) {
	if _, err := s.findRubric(ctx, rubricSlug); err != nil {
		return nil, err
	}

	categories, err := s.loadCategories(ctx, rubricSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return s.trees.BuildTree(CategoriesToFlatTree(categories), locale, gender), nil
}

// findRubric resolves the rubric scope; its absence is the one structural
// not-found of the catalogue
func (s *CatalogService) findRubric(ctx context.Context, slug string) (*models.Rubric, error) {
	var rubric models.Rubric
	err := utils.FindOneWithTimeout(ctx, s.database.Collection(config.AppConfig.RubricCollection),
		bson.M{"slug": slug}, &rubric, utils.DefaultQueryTimeout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrRubricNotFound
		}
		return nil, fmt.Errorf("failed to find rubric: %w", err)
	}
	return &rubric, nil
}

// runAggregation executes the faceted pipeline and decodes its single result
func (s *CatalogService) runAggregation(ctx context.Context, match bson.M, state *models.FilterState) (*models.CatalogueAggregation, error) {
	collection := s.database.Collection(config.AppConfig.ProductCollection)

	var results []models.CatalogueAggregation
	err := utils.AggregateAllWithTimeout(ctx, collection,
		s.pipeline.BuildCataloguePipeline(match, state), &results, utils.AggregationTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to run catalogue aggregation: %w", err)
	}
	if len(results) == 0 {
		return &models.CatalogueAggregation{}, nil
	}
	return &results[0], nil
}

// loadRubricAttributes fetches the rubric's attributes in priority order with
// their options attached, plus lookup indexes used for snippet features:
// attribute+option slug -> option, and attribute slug -> priority position.
func (s *CatalogService) loadRubricAttributes(ctx context.Context, rubricSlug string) ([]models.Attribute, map[string]map[string]models.Option, map[string]int, error) {
	var attributes []models.Attribute
	err := utils.FindAllWithTimeout(ctx, s.database.Collection(config.AppConfig.AttributeCollection),
		bson.M{"rubricSlugs": rubricSlug},
		bson.D{{Key: "priority", Value: -1}},
		&attributes, utils.DefaultQueryTimeout)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find attributes: %w", err)
	}

	groupIDs := make([]interface{}, 0, len(attributes))
	for _, attribute := range attributes {
		if !attribute.OptionsGroupID.IsZero() {
			groupIDs = append(groupIDs, attribute.OptionsGroupID)
		}
	}

	optionsByGroup := map[string][]models.Option{}
	if len(groupIDs) > 0 {
		var opts []models.Option
		err := utils.FindAllWithTimeout(ctx, s.database.Collection(config.AppConfig.OptionCollection),
			bson.M{"groupId": bson.M{"$in": groupIDs}}, nil, &opts, utils.DefaultQueryTimeout)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to find options: %w", err)
		}
		for _, option := range opts {
			key := option.GroupID.Hex()
			optionsByGroup[key] = append(optionsByGroup[key], option)
		}
	}

	optionIndex := make(map[string]map[string]models.Option, len(attributes))
	priorityIndex := make(map[string]int, len(attributes))
	for i := range attributes {
		attributes[i].Options = optionsByGroup[attributes[i].OptionsGroupID.Hex()]
		priorityIndex[attributes[i].Slug] = i

		byOption := make(map[string]models.Option, len(attributes[i].Options))
		for _, option := range attributes[i].Options {
			byOption[option.Slug] = option
		}
		optionIndex[attributes[i].Slug] = byOption
	}

	return attributes, optionIndex, priorityIndex, nil
}

// withSyntheticAttributes prepends category/price/brand and appends the
// common group, injecting their occurrence counts into the facet data so the
// assembler can treat all attributes uniformly
func (s *CatalogService) withSyntheticAttributes(ctx context.Context, rubric *models.Rubric, attributes []models.Attribute, facet *models.FacetData, total int) ([]models.Attribute, error) {
	categories, err := s.loadCategories(ctx, rubric.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	brands, err := s.loadBrands(ctx, facet)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	inject := func(attributeSlug string, optionSlugs ...string) {
		if facet.OptionCounts[attributeSlug] == nil {
			facet.OptionCounts[attributeSlug] = map[string]int{}
		}
		for _, slug := range optionSlugs {
			facet.OptionCounts[attributeSlug][slug]++
		}
	}

	inject(models.CategoryKey, facet.CategorySlugs...)
	for brandSlug, collections := range facet.Brands {
		inject(models.BrandKey, brandSlug)
		for _, collection := range collections {
			if collection != "" {
				inject(models.BrandCollectionKey, collection)
			}
		}
	}
	if total > 0 {
		inject(models.CommonKey, models.NoPhotoOption)
	}

	all := make([]models.Attribute, 0, len(attributes)+5)
	all = append(all,
		s.assembler.BuildCategoryAttribute(categories),
		s.assembler.BuildPriceAttribute(),
		s.assembler.BuildBrandAttribute(brands),
		s.assembler.BuildCollectionAttribute(brands),
	)
	all = append(all, attributes...)
	all = append(all, s.assembler.BuildCommonAttribute())
	return all, nil
}

// loadCategories fetches the rubric's category list
func (s *CatalogService) loadCategories(ctx context.Context, rubricSlug string) ([]models.Category, error) {
	var categories []models.Category
	err := utils.FindAllWithTimeout(ctx, s.database.Collection(config.AppConfig.CategoryCollection),
		bson.M{"rubricSlug": rubricSlug}, nil, &categories, utils.DefaultQueryTimeout)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// loadBrands fetches the brands the facet observed in the match set
func (s *CatalogService) loadBrands(ctx context.Context, facet *models.FacetData) ([]models.Brand, error) {
	if len(facet.Brands) == 0 {
		return nil, nil
	}

	slugs := make([]string, 0, len(facet.Brands))
	for slug := range facet.Brands {
		slugs = append(slugs, slug)
	}

	var brands []models.Brand
	err := utils.FindAllWithTimeout(ctx, s.database.Collection(config.AppConfig.BrandCollection),
		bson.M{"slug": bson.M{"$in": slugs}}, nil, &brands, utils.DefaultQueryTimeout)
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// resolveShopPrices refreshes each doc's min/max price from per-shop offers.
// The lookups are independent, so they run through a bounded worker pool
// rather than sequentially per row. Failures leave the stored price in place.
func (s *CatalogService) resolveShopPrices(ctx context.Context, docs []models.Product) {
	workers := config.AppConfig.ShopLookupWorkers
	if workers <= 0 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(product *models.Product) {
			defer wg.Done()
			defer func() { <-sem }()

			min, max, err := s.shopPriceRange(ctx, product)
			if err != nil {
				s.logger.Debug("shop price lookup failed",
					zap.String("product", product.Slug),
					zap.Error(err))
				return
			}
			if min > 0 {
				product.MinPrice = min
				product.MaxPrice = max
			}
		}(&docs[i])
	}
	wg.Wait()
}

// shopPriceRange aggregates the offer price bounds for one product
func (s *CatalogService) shopPriceRange(ctx context.Context, product *models.Product) (int, int, error) {
	var bounds []struct {
		Min int `bson:"min"`
		Max int `bson:"max"`
	}
	err := utils.AggregateAllWithTimeout(ctx, s.database.Collection(config.AppConfig.ShopProductCollection), []bson.M{
		{"$match": bson.M{"productId": product.ID, "available": bson.M{"$gt": 0}}},
		{"$group": bson.M{
			"_id": nil,
			"min": bson.M{"$min": "$price"},
			"max": bson.M{"$max": "$price"},
		}},
	}, &bounds, utils.DefaultQueryTimeout)
	if err != nil {
		return 0, 0, err
	}
	if len(bounds) == 0 {
		return 0, 0, nil
	}
	return bounds[0].Min, bounds[0].Max, nil
}

// buildSnippets recomputes display-only product fields: formatted price range
// and the truncated list-view feature set ordered by the rubric's attribute
// priority index
func (s *CatalogService) buildSnippets(docs []models.Product, optionIndex map[string]map[string]models.Option, priorityIndex map[string]int, locale string) []models.ProductSnippet {
	snippets := make([]models.ProductSnippet, 0, len(docs))
	for _, product := range docs {
		name := s.localizer.Resolve(product.CardNameI18n, locale)
		if name == "" {
			name = s.localizer.ResolveOr(product.NameI18n, locale, i18n.NotFoundSentinel)
		}

		snippets = append(snippets, models.ProductSnippet{
			ID:             product.ID.Hex(),
			ItemID:         product.ItemID,
			Slug:           product.Slug,
			Name:           name,
			MainImage:      product.MainImage,
			MinPrice:       product.MinPrice,
			MaxPrice:       product.MaxPrice,
			FormattedPrice: utils.FormatPriceRange(product.MinPrice, product.MaxPrice),
			RubricSlug:     product.RubricSlug,
			BrandSlug:      product.BrandSlug,
			ListFeatures:   s.buildListFeatures(product, optionIndex, priorityIndex, locale),
		})
	}
	return snippets
}

// buildListFeatures renders up to the configured number of name/value feature
// lines for a product card
func (s *CatalogService) buildListFeatures(product models.Product, optionIndex map[string]map[string]models.Option, priorityIndex map[string]int, locale string) []models.SnippetFeature {
	source := product.SnippetAttributes
	if len(source) == 0 {
		source = product.Attributes
	}

	// Order by the rubric's attribute priority index; unknown attributes sink
	ordered := make([]models.ProductAttribute, len(source))
	copy(ordered, source)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && s.attributeRank(ordered[j-1].AttributeSlug, priorityIndex) > s.attributeRank(ordered[j].AttributeSlug, priorityIndex); j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}

	limit := config.AppConfig.CatalogSnippetAttributes
	var features []models.SnippetFeature
	for _, productAttribute := range ordered {
		if len(features) >= limit {
			break
		}

		byOption := optionIndex[productAttribute.AttributeSlug]
		if byOption == nil {
			continue
		}

		var values []string
		for _, optionSlug := range productAttribute.OptionSlugs {
			option, ok := byOption[optionSlug]
			if !ok {
				// Inconsistent data is excluded, not fatal
				continue
			}
			if value := option.NameFor(s.localizer, locale, ""); value != "" {
				values = append(values, value)
			}
		}
		if len(values) == 0 {
			continue
		}

		features = append(features, models.SnippetFeature{
			Name:  productAttribute.AttributeSlug,
			Value: strings.Join(values, optionValueSeparator),
		})
	}
	return features
}

// attributeRank returns an attribute's position in the rubric priority index
func (s *CatalogService) attributeRank(slug string, priorityIndex map[string]int) int {
	if rank, ok := priorityIndex[slug]; ok {
		return rank
	}
	return len(priorityIndex) + 1
}

// emptyPage is the safe fallback: zero results, first page, empty facets
func (s *CatalogService) emptyPage(rubric *models.Rubric, state *models.FilterState, locale string) *models.CataloguePage {
	return &models.CataloguePage{
		Title:      s.localizer.Resolve(rubric.CatalogueTitle.DefaultTitleI18n, locale),
		RubricSlug: rubric.Slug,
		Products:   []models.ProductSnippet{},
		Attributes: []models.CatalogueFilterAttribute{},
		Pagination: models.Pagination{
			Page:  1,
			Limit: state.Limit,
		},
	}
}

// cacheKey derives the page cache key from everything that shapes a response
func (s *CatalogService) cacheKey(req CatalogueRequest) string {
	return fmt.Sprintf("catalogue:%s:%s:%s:%s",
		req.Locale, req.RubricSlug, strings.Join(req.Filters, "/"), req.Search)
}

// cachedPage returns the cached view model, or nil on miss or cache trouble
func (s *CatalogService) cachedPage(ctx context.Context, req CatalogueRequest) *models.CataloguePage {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, s.cacheKey(req)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("catalogue cache read failed", zap.Error(err))
		}
		observability.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var page models.CataloguePage
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		s.logger.Warn("catalogue cache entry corrupt", zap.Error(err))
		observability.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	observability.CacheHits.WithLabelValues("hit").Inc()
	return &page
}

// storePage caches an assembled page; failures are logged and ignored
func (s *CatalogService) storePage(ctx context.Context, req CatalogueRequest, page *models.CataloguePage) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("failed to marshal catalogue page for cache", zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, s.cacheKey(req), raw, config.AppConfig.RedisTTL).Err(); err != nil {
		s.logger.Warn("catalogue cache write failed", zap.Error(err))
	}
}
