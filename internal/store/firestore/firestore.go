// Package firestore adapts a Cloud Firestore client to the store contract.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"finbook/internal/store"
)

// Store wraps a Firestore client.
type Store struct {
	client *firestore.Client
}

// New connects to Firestore for the given project. credentialsFile may be
// empty, in which case application default credentials are used (the emulator
// and deployed environments both rely on this).
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Collection returns the named Firestore collection.
func (s *Store) Collection(name string) store.Collection {
	return &collection{client: s.client, ref: s.client.Collection(name)}
}

type collection struct {
	client *firestore.Client
	ref    *firestore.CollectionRef
}

func (c *collection) Get(ctx context.Context, id string) (*store.Doc, error) {
	snap, err := c.ref.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store.Doc{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (c *collection) Query(ctx context.Context, q store.Query) ([]store.Doc, error) {
	fq := c.ref.Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	var docs []store.Doc
	it := fq.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Doc{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (c *collection) Create(ctx context.Context, data map[string]any) (string, error) {
	ref := c.ref.NewDoc()
	if _, err := ref.Set(ctx, translate(data)); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (c *collection) CreateAll(ctx context.Context, docs []map[string]any) error {
	if len(docs) == 0 {
		return nil
	}
	batch := c.client.Batch()
	for _, data := range docs {
		batch.Set(c.ref.NewDoc(), translate(data))
	}
	_, err := batch.Commit(ctx)
	return err
}

func (c *collection) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range translate(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := c.ref.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return err
}

func (c *collection) Set(ctx context.Context, id string, data map[string]any) error {
	_, err := c.ref.Doc(id).Set(ctx, translate(data), firestore.MergeAll)
	return err
}

func (c *collection) Delete(ctx context.Context, id string) error {
	_, err := c.ref.Doc(id).Delete(ctx)
	return err
}

// translate swaps the store's server-timestamp sentinel for Firestore's.
func translate(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if v == store.ServerTimestamp {
			out[k] = firestore.ServerTimestamp
		} else {
			out[k] = v
		}
	}
	return out
}
