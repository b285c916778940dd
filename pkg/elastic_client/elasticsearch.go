package elastic_client

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/config"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer
var failedDocuments atomic.Int64

func Connect(cfg config.ElasticsearchConfig) error {
	if !cfg.Enabled() {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Address},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return err
	}

	res, err := es.Info()
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch info: %s", res.Status())
	}

	Client = es
	failedDocuments.Store(0)

	bulkIndexer, err = esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,              // The Elasticsearch client
		FlushInterval: 5 * time.Second, // The periodic flush interval
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("Elasticsearch client setup for %s", cfg.Address)

	return nil
}

func IndexRequest(ctx context.Context, indexName string, documentID string, document io.ReadSeeker) error {
	if Client == nil {
		return nil
	}

	return bulkIndexer.Add(
		ctx,
		esutil.BulkIndexerItem{
			Index:      indexName,
			Action:     "index",
			DocumentID: documentID,
			Body:       document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failedDocuments.Add(1)
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
}

// WaitUntilQueueEmpty flushes the bulk indexer and reports documents that failed to index
func WaitUntilQueueEmpty(ctx context.Context) error {
	if Client == nil {
		return nil
	}

	if err := bulkIndexer.Close(ctx); err != nil {
		return err
	}

	stats := bulkIndexer.Stats()
	log.Info().Uint64("indexed", stats.NumIndexed).Uint64("failed", stats.NumFailed).Msg("Elasticsearch bulk index complete")

	if failed := failedDocuments.Load(); failed > 0 {
		return fmt.Errorf("%d documents failed to index", failed)
	}

	return nil
}
