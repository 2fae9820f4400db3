package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
)

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client *datastore.Client
}

// NewDatastoreClient connects to the given project.
func NewDatastoreClient(ctx context.Context, projectID string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &DatastoreClient{client: client}, nil
}

// Raw exposes the underlying client for query building.
func (dc *DatastoreClient) Raw() *datastore.Client {
	if dc == nil {
		return nil
	}
	return dc.client
}

// BatchPut saves entities under name keys of the given kind. The entities
// argument follows datastore.PutMulti conventions (a slice of structs or
// struct pointers aligned with names).
func (dc *DatastoreClient) BatchPut(ctx context.Context, kind string, names []string, entities interface{}) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}
	if len(names) == 0 {
		return nil
	}

	keys := make([]*datastore.Key, len(names))
	for i, name := range names {
		keys[i] = datastore.NameKey(kind, name, nil)
	}

	_, err := dc.client.PutMulti(ctx, keys, entities)
	return err
}

// DeleteKind removes every entity of a kind.
func (dc *DatastoreClient) DeleteKind(ctx context.Context, kind string) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	q := datastore.NewQuery(kind).KeysOnly()
	keys, err := dc.client.GetAll(ctx, q, nil)
	if err != nil {
		return fmt.Errorf("failed to list %s keys: %w", kind, err)
	}
	if len(keys) == 0 {
		return nil
	}

	return dc.client.DeleteMulti(ctx, keys)
}
