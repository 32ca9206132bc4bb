package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/torgmarket/catalog-api/internal/logging"
	"github.com/torgmarket/catalog-api/internal/redisclient"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
	// Elasticsearch client (keyword search collaborator)
	Elasticsearch *elasticsearch.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Configure MongoDB with optimizations
	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()). // Add OpenTelemetry instrumentation
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the database
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("Connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// InitElasticsearch initializes the Elasticsearch client used by keyword search
func InitElasticsearch() {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{AppConfig.ElasticsearchURL},
	})
	if err != nil {
		logging.Logger.Error("failed to create Elasticsearch client",
			zap.String("url", AppConfig.ElasticsearchURL),
			zap.Error(err))
		return
	}

	Elasticsearch = client

	logging.Logger.Info("Elasticsearch client ready",
		zap.String("url", AppConfig.ElasticsearchURL),
		zap.String("index", AppConfig.ElasticsearchIndex))
}

// maskMongoURI masks sensitive information in MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// ensureIndexes creates required indexes if they don't exist
func ensureIndexes() error {
	logger := zap.L().Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		AppConfig.ProductCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("slug_1").SetUnique(true)},
			{Keys: bson.D{{Key: "rubricSlug", Value: 1}}, Options: options.Index().SetName("rubricSlug_1")},
			{Keys: bson.D{{Key: "selectedOptionsSlugs", Value: 1}}, Options: options.Index().SetName("selectedOptionsSlugs_1")},
			{Keys: bson.D{{Key: "minPrice", Value: 1}}, Options: options.Index().SetName("minPrice_1")},
		},
		AppConfig.RubricCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("slug_1").SetUnique(true)},
		},
		AppConfig.ShopProductCollection: {
			{Keys: bson.D{{Key: "productId", Value: 1}}, Options: options.Index().SetName("productId_1")},
		},
	}

	for collection, models := range indexes {
		if err := ensureCollectionIndexes(ctx, logger, collection, models); err != nil {
			return err
		}
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureCollectionIndexes creates the given indexes, tolerating concurrent creation
func ensureCollectionIndexes(ctx context.Context, logger *zap.Logger, name string, indexModels []mongo.IndexModel) error {
	collection := MongoDB.Collection(name)

	existing := map[string]bool{}
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes", zap.String("collection", name), zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if indexName, ok := index["name"].(string); ok {
			existing[indexName] = true
		}
	}

	for _, model := range indexModels {
		indexName := ""
		if model.Options != nil && model.Options.Name != nil {
			indexName = *model.Options.Name
		}
		if existing[indexName] {
			continue
		}

		if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
			// Another instance may have created it in the meantime
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			logger.Error("failed to create index",
				zap.String("collection", name),
				zap.String("index", indexName),
				zap.Error(err))
			return err
		}

		logger.Info("created index",
			zap.String("collection", name),
			zap.String("index", indexName))
	}

	return nil
}
