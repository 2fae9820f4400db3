package database

import (
	"context"
	"fmt"

	"github.com/olivere/elastic/v7"
)

// ElasticClient wraps olivere/elastic client.
type ElasticClient struct {
	client *elastic.Client
}

// NewElasticClient creates a new client for Elasticsearch 7.x.
func NewElasticClient(url string) (*ElasticClient, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &ElasticClient{client: client}, nil
}

// Raw exposes the underlying client for query building.
func (ec *ElasticClient) Raw() *elastic.Client {
	if ec == nil {
		return nil
	}
	return ec.client
}

// BulkIndex indexes documents into an index, keyed by the given id field.
// Documents missing the id field get auto-generated ids.
func (ec *ElasticClient) BulkIndex(ctx context.Context, index, idField string, docs []map[string]interface{}) error {
	if ec == nil || ec.client == nil {
		return fmt.Errorf("elasticsearch client is nil")
	}
	if len(docs) == 0 {
		return nil
	}

	bulkRequest := ec.client.Bulk()
	for _, doc := range docs {
		req := elastic.NewBulkIndexRequest().Index(index).Doc(doc)
		if id, ok := doc[idField]; ok {
			req = req.Id(fmt.Sprint(id))
		}
		bulkRequest = bulkRequest.Add(req)
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if bulkResponse.Errors {
		// Surface the first error only
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk item failed: %s", op.Error.Reason)
				}
			}
		}
	}

	return nil
}

// ResetIndex drops an index if it exists. The next bulk index recreates it
// with dynamic mappings.
func (ec *ElasticClient) ResetIndex(ctx context.Context, index string) error {
	if ec == nil || ec.client == nil {
		return fmt.Errorf("elasticsearch client is nil")
	}

	exists, err := ec.client.IndexExists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", index, err)
	}
	if !exists {
		return nil
	}

	if _, err := ec.client.DeleteIndex(index).Do(ctx); err != nil {
		return fmt.Errorf("failed to delete index %s: %w", index, err)
	}
	return nil
}
