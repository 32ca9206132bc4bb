package services

import (
	"math"

	"github.com/torgmarket/catalog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// PipelineBuilder describes the faceted catalogue aggregation. It only
// builds stage documents; execution stays with the caller.
type PipelineBuilder struct {
	rubricCollection  string
	snippetAttributes int
}

// NewPipelineBuilder creates a new pipeline builder instance
func NewPipelineBuilder(rubricCollection string, snippetAttributes int) *PipelineBuilder {
	return &PipelineBuilder{
		rubricCollection:  rubricCollection,
		snippetAttributes: snippetAttributes,
	}
}

// BuildCataloguePipeline assembles the single-round-trip faceted query: one
// $match over the resolved predicates, then parallel facet branches computed
// over the same matched set. The docs branch paginates, joins the rubric and
// slices a snippet-sized view of each product's attributes; the attributes
// branch is what makes the filter list faceted rather than static.
func (b *PipelineBuilder) BuildCataloguePipeline(match bson.M, state *models.FilterState) []bson.M {
	docs := []bson.M{
		{"$sort": b.sortStage(state)},
		{"$skip": Skip(state.Page, state.Limit)},
		{"$limit": state.Limit},
		{"$lookup": bson.M{
			"from": b.rubricCollection,
			"let":  bson.M{"rubricSlug": "$rubricSlug"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr": bson.M{"$eq": bson.A{"$slug", "$$rubricSlug"}},
				}},
			},
			"as": "rubrics",
		}},
		{"$addFields": bson.M{
			"rubric": bson.M{"$arrayElemAt": bson.A{"$rubrics", 0}},
		}},
		{"$project": bson.M{"rubrics": 0}},
		{"$addFields": bson.M{
			"snippetAttributes": bson.M{
				"$slice": bson.A{"$attributes", b.snippetAttributes},
			},
		}},
	}

	return []bson.M{
		{"$match": match},
		{"$facet": bson.M{
			"docs": docs,
			"prices": []bson.M{
				{"$group": bson.M{"_id": "$minPrice"}},
			},
			"categories": []bson.M{
				{"$unwind": "$categorySlugs"},
				{"$group": bson.M{"_id": "$categorySlugs"}},
			},
			"brands": []bson.M{
				{"$match": bson.M{"brandSlug": bson.M{"$nin": bson.A{nil, ""}}}},
				{"$group": bson.M{
					"_id":         "$brandSlug",
					"collections": bson.M{"$addToSet": "$brandCollectionSlug"},
				}},
			},
			"countAllDocs": []bson.M{
				{"$count": "totalDocs"},
			},
			"attributes": []bson.M{
				{"$unwind": "$attributes"},
				{"$unwind": "$attributes.optionSlugs"},
				{"$group": bson.M{
					"_id": bson.M{
						"attributeSlug": "$attributes.attributeSlug",
						"optionSlug":    "$attributes.optionSlugs",
					},
					"count": bson.M{"$sum": 1},
				}},
			},
		}},
	}
}

// sortStage builds the docs ordering. Price sorting orders by computed
// minimum price, then the view-priority score; everything else orders by the
// priority score alone. itemId is the stable insertion-order tie-break.
func (b *PipelineBuilder) sortStage(state *models.FilterState) bson.D {
	direction := 1
	if state.SortDesc {
		direction = -1
	}

	if state.SortBy == models.SortByPrice {
		return bson.D{
			{Key: "minPrice", Value: direction},
			{Key: "priority", Value: -1},
			{Key: "itemId", Value: -1},
		}
	}
	return bson.D{
		{Key: "priority", Value: direction},
		{Key: "itemId", Value: -1},
	}
}

// Skip returns the document offset for a page
func Skip(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages returns the page count for a match total; zero total means zero
// pages
func TotalPages(totalCount, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
