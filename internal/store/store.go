// Package store defines the document-store contract the services are built
// against. The backing implementation is Firestore (internal/store/firestore);
// an in-memory implementation (internal/store/memory) backs the tests.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// MaxInValues is the largest value set a single "in" filter may carry.
// Firestore rejects "in" queries with more than 30 values, so callers
// checking larger sets must chunk their queries.
const MaxInValues = 30

// serverTimestamp is the unexported type behind ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value. Writing it instructs the store
// to assign its own commit-time timestamp to the field.
var ServerTimestamp = serverTimestamp{}

// Op is a query filter operator.
type Op string

const (
	OpEqual Op = "=="
	OpGTE   Op = ">="
	OpLTE   Op = "<="
	OpIn    Op = "in"
)

// Filter is a single field predicate.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query describes an ordered, filtered read over a collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Doc is a document as returned from a collection read.
type Doc struct {
	ID   string
	Data map[string]any
}

// Collection is one named document collection.
type Collection interface {
	// Get returns the document with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Doc, error)

	// Query returns all documents matching q.
	Query(ctx context.Context, q Query) ([]Doc, error)

	// Create writes a new document with a store-assigned ID and returns it.
	Create(ctx context.Context, data map[string]any) (string, error)

	// CreateAll writes every given document in a single atomic batch. Either
	// all documents are committed or none are.
	CreateAll(ctx context.Context, docs []map[string]any) error

	// Update merges the given fields into an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Set merges the given fields into the document with the given ID,
	// creating it if absent.
	Set(ctx context.Context, id string, data map[string]any) error

	// Delete removes the document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}
