package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/torgmarket/catalog-api/internal/models"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Elasticsearch configuration (keyword search collaborator)
	ElasticsearchURL   string `json:"elasticsearch_url"`
	ElasticsearchIndex string `json:"elasticsearch_index"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// Collection names
	ProductCollection     string `json:"mongo_product_collection"`
	ShopProductCollection string `json:"mongo_shop_product_collection"`
	RubricCollection      string `json:"mongo_rubric_collection"`
	AttributeCollection   string `json:"mongo_attribute_collection"`
	OptionCollection      string `json:"mongo_option_collection"`
	BrandCollection       string `json:"mongo_brand_collection"`
	CategoryCollection    string `json:"mongo_category_collection"`

	// Catalogue tuning
	CatalogDefaultLimit      int                  `json:"catalog_default_limit"`
	CatalogMaxVisibleOptions int                  `json:"catalog_max_visible_options"`
	CatalogSnippetAttributes int                  `json:"catalog_snippet_attributes"`
	ShopLookupWorkers        int                  `json:"shop_lookup_workers"`
	PriceBuckets             []models.PriceBucket `json:"price_buckets"`

	// Localization fallback chain
	DefaultLocale   string `json:"default_locale"`
	SecondaryLocale string `json:"secondary_locale"`
}

var (
	AppConfig *Config
)

// defaultPriceBuckets is the reference bucket table, overridable via
// CATALOG_PRICE_BUCKETS ("min_max,min_max,...").
var defaultPriceBuckets = []models.PriceBucket{
	{Min: 0, Max: 499},
	{Min: 500, Max: 999},
	{Min: 1000, Max: 4999},
	{Min: 5000, Max: 9999},
	{Min: 10000, Max: 49999},
	{Min: 50000, Max: 99999},
	{Min: 100000, Max: 499999},
	{Min: 500000, Max: 999999},
}

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	defaultLimit, err := strconv.Atoi(getEnvOrDefault("CATALOG_DEFAULT_LIMIT", "36"))
	if err != nil || defaultLimit <= 0 {
		return fmt.Errorf("invalid CATALOG_DEFAULT_LIMIT: %v", err)
	}

	maxVisibleOptions, err := strconv.Atoi(getEnvOrDefault("CATALOG_MAX_VISIBLE_OPTIONS", "5"))
	if err != nil || maxVisibleOptions <= 0 {
		return fmt.Errorf("invalid CATALOG_MAX_VISIBLE_OPTIONS: %v", err)
	}

	snippetAttributes, err := strconv.Atoi(getEnvOrDefault("CATALOG_SNIPPET_ATTRIBUTES", "3"))
	if err != nil || snippetAttributes <= 0 {
		return fmt.Errorf("invalid CATALOG_SNIPPET_ATTRIBUTES: %v", err)
	}

	shopLookupWorkers, err := strconv.Atoi(getEnvOrDefault("SHOP_LOOKUP_WORKERS", "8"))
	if err != nil || shopLookupWorkers <= 0 {
		return fmt.Errorf("invalid SHOP_LOOKUP_WORKERS: %v", err)
	}

	priceBuckets, err := parsePriceBuckets(os.Getenv("CATALOG_PRICE_BUCKETS"))
	if err != nil {
		return fmt.Errorf("invalid CATALOG_PRICE_BUCKETS: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "catalog"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Elasticsearch configuration
		ElasticsearchURL:   getEnvOrDefault("ELASTICSEARCH_URL", "http://localhost:9200"),
		ElasticsearchIndex: getEnvOrDefault("ELASTICSEARCH_INDEX", "catalog_products"),

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		// Collection names
		ProductCollection:     getEnvOrDefault("MONGODB_PRODUCT_COLLECTION", "products"),
		ShopProductCollection: getEnvOrDefault("MONGODB_SHOP_PRODUCT_COLLECTION", "shop_products"),
		RubricCollection:      getEnvOrDefault("MONGODB_RUBRIC_COLLECTION", "rubrics"),
		AttributeCollection:   getEnvOrDefault("MONGODB_ATTRIBUTE_COLLECTION", "attributes"),
		OptionCollection:      getEnvOrDefault("MONGODB_OPTION_COLLECTION", "options"),
		BrandCollection:       getEnvOrDefault("MONGODB_BRAND_COLLECTION", "brands"),
		CategoryCollection:    getEnvOrDefault("MONGODB_CATEGORY_COLLECTION", "categories"),

		// Catalogue tuning
		CatalogDefaultLimit:      defaultLimit,
		CatalogMaxVisibleOptions: maxVisibleOptions,
		CatalogSnippetAttributes: snippetAttributes,
		ShopLookupWorkers:        shopLookupWorkers,
		PriceBuckets:             priceBuckets,

		// Localization fallback chain
		DefaultLocale:   getEnvOrDefault("DEFAULT_LOCALE", "ru"),
		SecondaryLocale: getEnvOrDefault("SECONDARY_LOCALE", "en"),
	}

	return nil
}

// parsePriceBuckets parses a "min_max,min_max" list; empty input keeps the
// reference table.
func parsePriceBuckets(raw string) ([]models.PriceBucket, error) {
	if raw == "" {
		return defaultPriceBuckets, nil
	}

	var buckets []models.PriceBucket
	for _, part := range strings.Split(raw, ",") {
		bucket, ok := models.ParsePriceBucket(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("malformed bucket %q", part)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
