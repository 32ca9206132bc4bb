package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/torgmarket/catalog-api/internal/config"
)

var (
	makerGroupID  = primitive.NewObjectID()
	matrixGroupID = primitive.NewObjectID()
	colorGroupID  = primitive.NewObjectID()

	canonOptionID = primitive.NewObjectID()
	nikonOptionID = primitive.NewObjectID()
	sonyOptionID  = primitive.NewObjectID()

	dslrCategoryID       = primitive.NewObjectID()
	mirrorlessCategoryID = primitive.NewObjectID()
	compactCategoryID    = primitive.NewObjectID()

	productCanonID = primitive.NewObjectID()
	productNikonID = primitive.NewObjectID()
	productSonyID  = primitive.NewObjectID()
)

// SeedRubrics contains the initial catalogue rubrics
var SeedRubrics = []models.Rubric{
	{
		Slug:     "fotoapparaty",
		NameI18n: i18n.Field{"ru": "Фотоаппараты", "en": "Cameras"},
		CatalogueTitle: models.CatalogueTitle{
			DefaultTitleI18n: i18n.Field{"ru": "Купить фотоаппараты", "en": "Buy cameras"},
			PrefixI18n:       i18n.Field{"ru": "купить", "en": "buy"},
			KeywordI18n:      i18n.Field{"ru": "фотоаппараты", "en": "cameras"},
			Gender:           models.GenderHe,
		},
		Priority: 10,
	},
}

// SeedAttributes contains the filterable attributes of the seed rubric
var SeedAttributes = []models.Attribute{
	{
		Slug:               "proizvoditel",
		NameI18n:           i18n.Field{"ru": "Производитель", "en": "Maker"},
		Variant:            models.VariantList,
		PositioningInTitle: map[string]string{"ru": models.PositionBeforeKeyword, "en": models.PositionBeforeKeyword},
		Capitalise:         true,
		RubricSlugs:        []string{"fotoapparaty"},
		Priority:           100,
		OptionsGroupID:     makerGroupID,
	},
	{
		Slug:               "tip-matritsy",
		NameI18n:           i18n.Field{"ru": "Тип матрицы", "en": "Sensor type"},
		Variant:            models.VariantTagCloud,
		PositioningInTitle: map[string]string{"ru": models.PositionEnd},
		RubricSlugs:        []string{"fotoapparaty"},
		Priority:           80,
		OptionsGroupID:     matrixGroupID,
	},
	{
		Slug:           "tsvet",
		NameI18n:       i18n.Field{"ru": "Цвет", "en": "Color"},
		Variant:        models.VariantIcon,
		RubricSlugs:    []string{"fotoapparaty"},
		Priority:       60,
		OptionsGroupID: colorGroupID,
	},
}

// SeedOptions contains the option values, keyed to their attribute groups
var SeedOptions = []models.Option{
	{ID: canonOptionID, GroupID: makerGroupID, Slug: "canon", NameI18n: i18n.Field{"ru": "Canon", "en": "Canon"}},
	{ID: nikonOptionID, GroupID: makerGroupID, Slug: "nikon", NameI18n: i18n.Field{"ru": "Nikon", "en": "Nikon"}},
	{ID: sonyOptionID, GroupID: makerGroupID, Slug: "sony", NameI18n: i18n.Field{"ru": "Sony", "en": "Sony"}},
	{GroupID: matrixGroupID, Slug: "full-frame", NameI18n: i18n.Field{"ru": "полнокадровая", "en": "full frame"}},
	{GroupID: matrixGroupID, Slug: "aps-c", NameI18n: i18n.Field{"ru": "APS-C", "en": "APS-C"}},
	{GroupID: colorGroupID, Slug: "chernyj", NameI18n: i18n.Field{"ru": "чёрный", "en": "black"}, Color: "#000000",
		Gender: models.GenderHe,
		Variants: map[string]i18n.Field{
			models.GenderShe: {"ru": "чёрная", "en": "black"},
			models.GenderIt:  {"ru": "чёрное", "en": "black"},
		}},
	{GroupID: colorGroupID, Slug: "serebristyj", NameI18n: i18n.Field{"ru": "серебристый", "en": "silver"}, Color: "#C0C0C0",
		Gender: models.GenderHe,
		Variants: map[string]i18n.Field{
			models.GenderShe: {"ru": "серебристая", "en": "silver"},
			models.GenderIt:  {"ru": "серебристое", "en": "silver"},
		}},
}

// SeedBrands contains manufacturers with their collections
var SeedBrands = []models.Brand{
	{
		Slug:     "canon",
		NameI18n: i18n.Field{"ru": "Canon", "en": "Canon"},
		Collections: []models.BrandCollection{
			{Slug: "eos", NameI18n: i18n.Field{"ru": "EOS", "en": "EOS"}},
		},
	},
	{
		Slug:     "nikon",
		NameI18n: i18n.Field{"ru": "Nikon", "en": "Nikon"},
		Collections: []models.BrandCollection{
			{Slug: "z-series", NameI18n: i18n.Field{"ru": "Z Series", "en": "Z Series"}},
		},
	},
	{
		Slug:     "sony",
		NameI18n: i18n.Field{"ru": "Sony", "en": "Sony"},
	},
}

// SeedCategories contains the rubric's category tree
var SeedCategories = []models.Category{
	{ID: dslrCategoryID, Slug: "zerkalnye", RubricSlug: "fotoapparaty", NameI18n: i18n.Field{"ru": "Зеркальные", "en": "DSLR"}},
	{ID: mirrorlessCategoryID, Slug: "bezzerkalnye", RubricSlug: "fotoapparaty", NameI18n: i18n.Field{"ru": "Беззеркальные", "en": "Mirrorless"}},
	{ID: compactCategoryID, Slug: "kompaktnye", RubricSlug: "fotoapparaty", ParentID: &mirrorlessCategoryID, NameI18n: i18n.Field{"ru": "Компактные", "en": "Compact"}},
}

// SeedProducts contains a few products across the categories and makers
var SeedProducts = []models.Product{
	{
		ID:                  productCanonID,
		ItemID:              1001,
		Slug:                "canon-eos-r6",
		NameI18n:            i18n.Field{"ru": "Фотоаппарат Canon EOS R6", "en": "Canon EOS R6 camera"},
		CardNameI18n:        i18n.Field{"ru": "Canon EOS R6", "en": "Canon EOS R6"},
		RubricSlug:          "fotoapparaty",
		CategorySlugs:       []string{"bezzerkalnye"},
		BrandSlug:           "canon",
		BrandCollectionSlug: "eos",
		MainImage:           "https://cdn.torgmarket.example/products/canon-eos-r6.jpg",
		MinPrice:            215000,
		MaxPrice:            239000,
		Priority:            100,
		Attributes: []models.ProductAttribute{
			{AttributeSlug: "proizvoditel", OptionSlugs: []string{"canon"}},
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"full-frame"}},
			{AttributeSlug: "tsvet", OptionSlugs: []string{"chernyj"}},
		},
		SelectedOptionsSlugs: []string{"proizvoditel-canon", "tip-matritsy-full-frame", "tsvet-chernyj"},
		SnippetAttributes: []models.ProductAttribute{
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"full-frame"}},
			{AttributeSlug: "tsvet", OptionSlugs: []string{"chernyj"}},
		},
	},
	{
		ID:                  productNikonID,
		ItemID:              1002,
		Slug:                "nikon-z6-ii",
		NameI18n:            i18n.Field{"ru": "Фотоаппарат Nikon Z6 II", "en": "Nikon Z6 II camera"},
		CardNameI18n:        i18n.Field{"ru": "Nikon Z6 II", "en": "Nikon Z6 II"},
		RubricSlug:          "fotoapparaty",
		CategorySlugs:       []string{"bezzerkalnye"},
		BrandSlug:           "nikon",
		BrandCollectionSlug: "z-series",
		MainImage:           "https://cdn.torgmarket.example/products/nikon-z6-ii.jpg",
		MinPrice:            198000,
		MaxPrice:            205000,
		Priority:            90,
		Attributes: []models.ProductAttribute{
			{AttributeSlug: "proizvoditel", OptionSlugs: []string{"nikon"}},
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"full-frame"}},
			{AttributeSlug: "tsvet", OptionSlugs: []string{"chernyj"}},
		},
		SelectedOptionsSlugs: []string{"proizvoditel-nikon", "tip-matritsy-full-frame", "tsvet-chernyj"},
		SnippetAttributes: []models.ProductAttribute{
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"full-frame"}},
		},
	},
	{
		ID:            productSonyID,
		ItemID:        1003,
		Slug:          "sony-zv-e10",
		NameI18n:      i18n.Field{"ru": "Фотоаппарат Sony ZV-E10", "en": "Sony ZV-E10 camera"},
		CardNameI18n:  i18n.Field{"ru": "Sony ZV-E10", "en": "Sony ZV-E10"},
		RubricSlug:    "fotoapparaty",
		CategorySlugs: []string{"bezzerkalnye", "kompaktnye"},
		BrandSlug:     "sony",
		MinPrice:      68000,
		MaxPrice:      74000,
		Priority:      80,
		Attributes: []models.ProductAttribute{
			{AttributeSlug: "proizvoditel", OptionSlugs: []string{"sony"}},
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"aps-c"}},
			{AttributeSlug: "tsvet", OptionSlugs: []string{"chernyj", "serebristyj"}},
		},
		SelectedOptionsSlugs: []string{"proizvoditel-sony", "tip-matritsy-aps-c", "tsvet-chernyj", "tsvet-serebristyj"},
		SnippetAttributes: []models.ProductAttribute{
			{AttributeSlug: "tip-matritsy", OptionSlugs: []string{"aps-c"}},
		},
	},
}

// SeedShopProducts contains per-shop offers for the seed products
var SeedShopProducts = []models.ShopProduct{
	{ProductID: productCanonID, ShopID: primitive.NewObjectID(), Price: 215000, Available: 3},
	{ProductID: productCanonID, ShopID: primitive.NewObjectID(), Price: 239000, Available: 1},
	{ProductID: productNikonID, ShopID: primitive.NewObjectID(), Price: 198000, Available: 2},
	{ProductID: productSonyID, ShopID: primitive.NewObjectID(), Price: 68000, Available: 7},
}

func main() {
	fmt.Println("🌱 Seeding catalogue fixtures...")

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize MongoDB
	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seedCollection(ctx, config.AppConfig.RubricCollection, toDocs(SeedRubrics))
	seedCollection(ctx, config.AppConfig.AttributeCollection, toDocs(SeedAttributes))
	seedCollection(ctx, config.AppConfig.OptionCollection, toDocs(SeedOptions))
	seedCollection(ctx, config.AppConfig.BrandCollection, toDocs(SeedBrands))
	seedCollection(ctx, config.AppConfig.CategoryCollection, toDocs(SeedCategories))
	seedCollection(ctx, config.AppConfig.ProductCollection, toDocs(SeedProducts))
	seedCollection(ctx, config.AppConfig.ShopProductCollection, toDocs(SeedShopProducts))

	fmt.Println("\n🎉 Seeding completed successfully!")
}

func seedCollection(ctx context.Context, name string, docs []interface{}) {
	collection := config.MongoDB.Collection(name)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count documents in %s: %v", name, err)
	}
	if count > 0 {
		result, err := collection.DeleteMany(ctx, bson.M{})
		if err != nil {
			log.Fatalf("Failed to clear %s: %v", name, err)
		}
		fmt.Printf("🗑️  Cleared %d existing documents from %s\n", result.DeletedCount, name)
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to seed %s: %v", name, err)
	}
	fmt.Printf("✅ Seeded %d documents into %s\n", len(result.InsertedIDs), name)
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}
