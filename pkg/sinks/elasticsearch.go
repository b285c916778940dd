package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/travigo/headways/pkg/config"
	"github.com/travigo/headways/pkg/elastic_client"
)

type ElasticsearchSink struct {
	index string
}

func NewElasticsearchSink(cfg config.ElasticsearchConfig) (*ElasticsearchSink, error) {
	if err := elastic_client.Connect(cfg); err != nil {
		return nil, fmt.Errorf("connect elasticsearch: %w", err)
	}

	return &ElasticsearchSink{index: cfg.Index}, nil
}

func (s *ElasticsearchSink) Name() string {
	return "elasticsearch"
}

func (s *ElasticsearchSink) Publish(ctx context.Context, run *Run) error {
	for _, document := range run.WindowAggregates {
		body, err := json.Marshal(document)
		if err != nil {
			return err
		}

		if err := elastic_client.IndexRequest(ctx, s.index, document.PrimaryIdentifier, bytes.NewReader(body)); err != nil {
			return fmt.Errorf("index %s: %w", document.PrimaryIdentifier, err)
		}
	}

	return nil
}

func (s *ElasticsearchSink) Close(ctx context.Context) error {
	return elastic_client.WaitUntilQueueEmpty(ctx)
}
