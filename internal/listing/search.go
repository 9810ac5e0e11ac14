// File: internal/listing/search.go
package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bhoomi_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// IndexListing pushes a single document to Elasticsearch, best-effort.
// Failures are logged, never surfaced; a nil client disables indexing.
func IndexListing(ctx context.Context, esClient *elasticsearch.ESClientWrapper, l *Listing, logger *zap.Logger) {
	if esClient == nil {
		return
	}
	doc, err := SearchDoc(l)
	if err != nil {
		logger.Warn("Failed to build search document", zap.Error(err), zap.String("listingID", l.ID.String()))
		return
	}
	req := esapi.IndexRequest{
		Index:      elasticsearch.ListingsIndexName,
		DocumentID: l.ID.String(),
		Body:       strings.NewReader(doc),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, esClient)
	if err != nil {
		logger.Warn("Failed to index listing", zap.Error(err), zap.String("listingID", l.ID.String()))
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		logger.Warn("Elasticsearch rejected listing document",
			zap.String("status", res.Status()),
			zap.String("listingID", l.ID.String()))
	}
}

// SearchDoc converts a listing to its Elasticsearch document representation.
// The seller association should be preloaded.
func SearchDoc(l *Listing) (string, error) {
	if l == nil {
		return "", errors.New("listing cannot be nil")
	}

	doc := map[string]interface{}{
		"title":          l.Title,
		"slug":           l.Slug,
		"category":       l.Category,
		"purpose":        l.Purpose,
		"location":       l.Location,
		"state":          l.State,
		"district":       l.District,
		"area":           l.Area,
		"area_unit":      l.AreaUnit,
		"price":          l.Price,
		"currency":       l.Currency,
		"verified_badge": l.VerifiedBadge,
		"description":    l.Description,
		"seller_id":      l.SellerID.String(),
		"views":          l.Views,
		"created_at":     l.CreatedAt,
		"updated_at":     l.UpdatedAt,
	}

	if l.Authority != nil {
		doc["authority"] = *l.Authority
	}
	if tags := decodeTags(l.Tags); len(tags) > 0 {
		doc["tags"] = tags
	}
	if l.Latitude != nil && l.Longitude != nil {
		doc["coordinates"] = map[string]float64{
			"lat": *l.Latitude,
			"lon": *l.Longitude,
		}
	} else {
		doc["coordinates"] = nil
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("error marshalling listing to JSON for ES: %w", err)
	}
	return string(docBytes), nil
}
