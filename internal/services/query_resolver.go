package services

import (
	"context"
	"fmt"

	"github.com/torgmarket/catalog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Searcher is the keyword search collaborator: an opaque ranking service that
// turns free text into an ordered candidate ID list
type Searcher interface {
	Search(ctx context.Context, text string, excludedIDs []primitive.ObjectID) ([]primitive.ObjectID, error)
}

// QueryFragments is the store-agnostic predicate set resolved from one filter
// state. NoResults is set when free text produced zero candidates, letting the
// orchestrator skip the main aggregation entirely.
type QueryFragments struct {
	Match     bson.M
	NoResults bool
}

// QueryResolver turns decoded filter state into match predicates
type QueryResolver struct {
	searcher Searcher
	logger   *zap.Logger
}

// NewQueryResolver creates a new query resolver instance
func NewQueryResolver(searcher Searcher, logger *zap.Logger) *QueryResolver {
	return &QueryResolver{
		searcher: searcher,
		logger:   logger,
	}
}

// Resolve builds the predicate fragments for a filter state. Attribute
// options combine with AND semantics: a product must carry every selected
// attribute-option pair. The search collaborator is consulted first when text
// is present because its ID list folds into the match predicate.
func (r *QueryResolver) Resolve(ctx context.Context, state *models.FilterState, searchText string, excludedIDs []primitive.ObjectID) (*QueryFragments, error) {
	match := bson.M{}

	if len(state.RubricSlugs) > 0 {
		match["rubricSlug"] = bson.M{"$in": state.RubricSlugs}
	}
	if len(state.CategorySlugs) > 0 {
		match["categorySlugs"] = bson.M{"$in": state.CategorySlugs}
	}
	if len(state.BrandSlugs) > 0 {
		match["brandSlug"] = bson.M{"$in": state.BrandSlugs}
	}
	if len(state.BrandCollectionSlugs) > 0 {
		match["brandCollectionSlug"] = bson.M{"$in": state.BrandCollectionSlugs}
	}

	// Both bounds required; a half-parsed range never reaches this point
	if state.HasPriceRange() {
		match["minPrice"] = bson.M{
			"$gte": *state.MinPrice,
			"$lte": *state.MaxPrice,
		}
	}

	if state.NoPhoto {
		match["$or"] = bson.A{
			bson.M{"mainImage": bson.M{"$exists": false}},
			bson.M{"mainImage": ""},
		}
	}

	if tokens := state.OptionTokens(); len(tokens) > 0 {
		match["selectedOptionsSlugs"] = bson.M{"$all": tokens}
	}

	if searchText != "" {
		ids, err := r.searcher.Search(ctx, searchText, excludedIDs)
		if err != nil {
			return nil, fmt.Errorf("keyword search failed: %w", err)
		}
		if len(ids) == 0 {
			r.logger.Debug("keyword search returned no candidates",
				zap.String("text", searchText))
			return &QueryFragments{Match: match, NoResults: true}, nil
		}
		match["_id"] = bson.M{"$in": ids}
	} else if len(excludedIDs) > 0 {
		match["_id"] = bson.M{"$nin": excludedIDs}
	}

	return &QueryFragments{Match: match}, nil
}
