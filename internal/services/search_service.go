package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/torgmarket/catalog-api/internal/models"
	"github.com/torgmarket/catalog-api/internal/observability"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// searchResultLimit caps how many candidate IDs one keyword query may return
const searchResultLimit = 1000

// SearchService implements the keyword search collaborator over an
// Elasticsearch product index. Only the ordered ID list is consumed; ranking
// internals stay opaque to the catalogue.
type SearchService struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(client *elasticsearch.Client, index string, logger *zap.Logger) *SearchService {
	return &SearchService{
		client: client,
		index:  index,
		logger: logger,
	}
}

// Search returns the ordered product IDs matching the free text, minus the
// exclusions. An empty result is a valid answer, not an error.
func (s *SearchService) Search(ctx context.Context, text string, excludedIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if s.client == nil {
		return nil, models.ErrSearchUnavailable
	}

	boolQuery := map[string]interface{}{
		"must": []map[string]interface{}{
			{
				"multi_match": map[string]interface{}{
					"query":     text,
					"fields":    []string{"name^3", "cardName^2", "description"},
					"fuzziness": "AUTO",
				},
			},
		},
	}
	if len(excludedIDs) > 0 {
		excluded := make([]string, 0, len(excludedIDs))
		for _, id := range excludedIDs {
			excluded = append(excluded, id.Hex())
		}
		boolQuery["must_not"] = []map[string]interface{}{
			{"ids": map[string]interface{}{"values": excluded}},
		}
	}

	body := map[string]interface{}{
		"size":    searchResultLimit,
		"_source": false,
		"query":   map[string]interface{}{"bool": boolQuery},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		observability.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		observability.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search returned status %s", res.Status())
	}
	observability.SearchRequests.WithLabelValues("success").Inc()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := primitive.ObjectIDFromHex(hit.ID)
		if err != nil {
			// Foreign document in the index; skip rather than fail the query
			s.logger.Warn("search hit with non-ObjectID id", zap.String("id", hit.ID))
			continue
		}
		ids = append(ids, id)
	}

	s.logger.Debug("keyword search completed",
		zap.String("text", text),
		zap.Int("hits", len(ids)))

	return ids, nil
}
