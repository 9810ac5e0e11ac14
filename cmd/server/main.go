// File: cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/platform/cache"
	"bhoomi_backend/internal/platform/database"
	platformElasticsearch "bhoomi_backend/internal/platform/elasticsearch"
	"bhoomi_backend/internal/platform/logger"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	syncListingsCmd := flag.NewFlagSet("sync-listings", flag.ExitOnError)
	esRefresh := syncListingsCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")

	if len(os.Args) > 1 && os.Args[1] == "sync-listings" {
		syncListingsCmd.Parse(os.Args[2:])
		runSyncListings(*esRefresh)
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		if err := platformElasticsearch.CreateListingsIndexIfNotExists(server.ESClient, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch listings index", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch client not initialized, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runSyncListings bulk-indexes every listing into Elasticsearch.
func runSyncListings(esRefresh string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize database for sync", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for sync", zap.Error(err))
	}
	if esClient == nil {
		appLogger.Fatal("FATAL: ELASTICSEARCH_URL must be set for sync-listings.")
	}

	if err := platformElasticsearch.CreateListingsIndexIfNotExists(esClient, appLogger); err != nil {
		appLogger.Fatal("FATAL: Failed to create/verify Elasticsearch index before sync", zap.Error(err))
	}

	listingRepo := listing.NewGORMRepository(db)
	if err := runListingSync(listingRepo, esClient, appLogger, esRefresh); err != nil {
		appLogger.Fatal("FATAL: Listing synchronization failed", zap.Error(err))
	}
	appLogger.Info("Listing synchronization completed successfully.")
}

func runListingSync(
	listingRepo listing.Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	logger *zap.Logger,
	esRefresh string,
) error {
	logger.Info("Starting listing synchronization to Elasticsearch...",
		zap.String("esRefreshPolicy", esRefresh),
	)

	listings, err := listingRepo.ListAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch listings: %w", err)
	}
	if len(listings) == 0 {
		logger.Info("No listings to sync.")
		return nil
	}

	var bulkRequestBody strings.Builder
	docIDs := make([]string, 0, len(listings))
	failed := 0

	for i := range listings {
		l := &listings[i]
		docJSON, errDoc := listing.SearchDoc(l)
		if errDoc != nil {
			logger.Error("Failed to convert listing to Elasticsearch document",
				zap.String("listingID", l.ID.String()),
				zap.Error(errDoc),
			)
			failed++
			continue
		}
		docIDs = append(docIDs, l.ID.String())
		bulkRequestBody.WriteString(fmt.Sprintf(`{ "index" : { "_index" : "%s", "_id" : "%s" } }%s`,
			platformElasticsearch.ListingsIndexName, l.ID.String(), "\n"))
		bulkRequestBody.WriteString(docJSON)
		bulkRequestBody.WriteString("\n")
	}

	if bulkRequestBody.Len() == 0 {
		logger.Warn("No documents to index, possibly due to conversion errors.")
		return nil
	}

	req := esapi.BulkRequest{
		Body:    strings.NewReader(bulkRequestBody.String()),
		Refresh: esRefresh,
	}
	res, err := req.Do(context.Background(), esClient.Client)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	synced := len(docIDs)
	if res.IsError() {
		logger.Error("Elasticsearch bulk request returned an error", zap.String("status", res.Status()))
		var raw map[string]interface{}
		if err := json.NewDecoder(res.Body).Decode(&raw); err == nil {
			if hadErrors, ok := raw["errors"].(bool); ok && hadErrors {
				items, _ := raw["items"].([]interface{})
				for i, item := range items {
					itemMap, _ := item.(map[string]interface{})
					indexMap, _ := itemMap["index"].(map[string]interface{})
					if errorVal, ok := indexMap["error"]; ok {
						listingID := "unknown"
						if i < len(docIDs) {
							listingID = docIDs[i]
						}
						logger.Error("Failed to index document in bulk batch",
							zap.String("listingID", listingID),
							zap.Any("error", errorVal),
						)
						synced--
						failed++
					}
				}
			}
		}
	}

	logger.Info("Listing sync finished", zap.Int("synced", synced), zap.Int("failed", failed))
	return nil
}

func provideCleanup(appLogger *zap.Logger, db *gorm.DB, cacheClient *cache.Cache) func() {
	return func() {
		appLogger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := cacheClient.Close(); err != nil {
			log.Printf("ERROR: Failed to close cache during cleanup: %v", err)
		}
		if err := appLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
