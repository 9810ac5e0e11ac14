package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const ListingsIndexName = "listings"

func defineListingsMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":          map[string]interface{}{"type": "text"},
				"slug":           map[string]interface{}{"type": "keyword"},
				"description":    map[string]interface{}{"type": "text"},
				"location":       map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}},
				"category":       map[string]interface{}{"type": "keyword"},
				"purpose":        map[string]interface{}{"type": "keyword"},
				"state":          map[string]interface{}{"type": "keyword"},
				"district":       map[string]interface{}{"type": "keyword"},
				"authority":      map[string]interface{}{"type": "keyword"},
				"seller_id":      map[string]interface{}{"type": "keyword"},
				"verified_badge": map[string]interface{}{"type": "boolean"},
				"price":          map[string]interface{}{"type": "double"},
				"area":           map[string]interface{}{"type": "double"},
				"tags":           map[string]interface{}{"type": "keyword"},
				"coordinates":    map[string]interface{}{"type": "geo_point"},
				"created_at":     map[string]interface{}{"type": "date"},
				"updated_at":     map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling listings mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateListingsIndexIfNotExists creates the listings index with the defined
// mapping if it does not already exist. A nil client is a no-op.
func CreateListingsIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	existsReq := esapi.IndicesExistsRequest{Index: []string{ListingsIndexName}}
	res, err := existsReq.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error checking if listings index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("Listings index already exists", zap.String("index_name", ListingsIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error checking if listings index exists: status %s", res.Status())
	}

	mappingJSON, err := defineListingsMapping()
	if err != nil {
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: ListingsIndexName,
		Body:  strings.NewReader(mappingJSON),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error creating listings index %s: %w", ListingsIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var errorBody map[string]interface{}
		if decErr := json.NewDecoder(createRes.Body).Decode(&errorBody); decErr == nil {
			log.Error("Failed to create listings index",
				zap.String("status", createRes.Status()),
				zap.Any("error_details", errorBody),
			)
		}
		return fmt.Errorf("failed to create listings index %s: status %s", ListingsIndexName, createRes.Status())
	}

	log.Info("Listings index created", zap.String("index_name", ListingsIndexName))
	return nil
}
