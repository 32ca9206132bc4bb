package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torgmarket/catalog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSkip(t *testing.T) {
	assert.Equal(t, 0, Skip(1, 36))
	assert.Equal(t, 36, Skip(2, 36))
	assert.Equal(t, 90, Skip(10, 10))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"exact division", 40, 10, 4},
		{"remainder rounds up", 45, 10, 5},
		{"single short page", 3, 10, 1},
		{"zero total", 0, 10, 0},
		{"zero limit", 45, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
		})
	}
}

func TestPipelineBuilder_SortStage(t *testing.T) {
	builder := NewPipelineBuilder("rubrics", 3)

	t.Run("default priority descending", func(t *testing.T) {
		stage := builder.sortStage(&models.FilterState{SortDesc: true})
		assert.Equal(t, bson.D{
			{Key: "priority", Value: -1},
			{Key: "itemId", Value: -1},
		}, stage)
	})

	t.Run("priority ascending", func(t *testing.T) {
		stage := builder.sortStage(&models.FilterState{SortDesc: false})
		assert.Equal(t, bson.D{
			{Key: "priority", Value: 1},
			{Key: "itemId", Value: -1},
		}, stage)
	})

	t.Run("price sort orders by minPrice first", func(t *testing.T) {
		stage := builder.sortStage(&models.FilterState{SortBy: models.SortByPrice, SortDesc: false})
		assert.Equal(t, bson.D{
			{Key: "minPrice", Value: 1},
			{Key: "priority", Value: -1},
			{Key: "itemId", Value: -1},
		}, stage)
	})
}

func TestPipelineBuilder_BuildCataloguePipeline(t *testing.T) {
	builder := NewPipelineBuilder("rubrics", 3)
	match := bson.M{"rubricSlug": "fotoapparaty"}
	state := &models.FilterState{Page: 2, Limit: 24, SortDesc: true}

	pipeline := builder.BuildCataloguePipeline(match, state)

	require.Len(t, pipeline, 2)
	assert.Equal(t, match, pipeline[0]["$match"])

	facet, ok := pipeline[1]["$facet"].(bson.M)
	require.True(t, ok)
	for _, branch := range []string{"docs", "prices", "categories", "brands", "countAllDocs", "attributes"} {
		assert.Contains(t, facet, branch)
	}

	docs, ok := facet["docs"].([]bson.M)
	require.True(t, ok)
	assert.Equal(t, 24, docs[1]["$skip"])
	assert.Equal(t, 24, docs[2]["$limit"])

	attributes, ok := facet["attributes"].([]bson.M)
	require.True(t, ok)
	// Double unwind so the group counts attribute/option pairs
	assert.Equal(t, "$attributes", attributes[0]["$unwind"])
	assert.Equal(t, "$attributes.optionSlugs", attributes[1]["$unwind"])
}
