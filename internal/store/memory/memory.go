// Package memory implements the store contract with in-process maps. It
// backs the test suite and local development without a Firestore project.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"finbook/internal/store"
)

// Store is an in-memory document store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any

	// Now supplies server-assigned timestamps. Tests may replace it to
	// control the clock.
	Now func() time.Time

	// BatchErr, when non-nil, causes the next CreateAll to fail without
	// writing anything. Used to exercise partial-failure accounting.
	BatchErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]any),
		Now:         time.Now,
	}
}

// Collection returns the named collection, creating it if absent.
func (s *Store) Collection(name string) store.Collection {
	return &collection{store: s, name: name}
}

// Len reports the number of documents in the named collection.
func (s *Store) Len(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[name])
}

// docs returns the named collection's map, creating it if absent. Callers
// must hold the write lock; read paths use the non-mutating lookup instead.
func (s *Store) docs(name string) map[string]map[string]any {
	docs, ok := s.collections[name]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[name] = docs
	}
	return docs
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Get(_ context.Context, id string) (*store.Doc, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	// Reading a nil map is safe, so an absent collection needs no creation.
	data, ok := c.store.collections[c.name][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Doc{ID: id, Data: clone(data)}, nil
}

func (c *collection) Query(_ context.Context, q store.Query) ([]store.Doc, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var out []store.Doc
	for id, data := range c.store.collections[c.name] {
		if matches(data, q.Filters) {
			out = append(out, store.Doc{ID: id, Data: clone(data)})
		}
	}

	if q.OrderBy != "" {
		sort.Slice(out, func(i, j int) bool {
			cmp := compare(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if q.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (c *collection) Create(_ context.Context, data map[string]any) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	id := uuid.NewString()
	c.store.docs(c.name)[id] = c.materialize(data)
	return id, nil
}

func (c *collection) CreateAll(_ context.Context, docs []map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if err := c.store.BatchErr; err != nil {
		c.store.BatchErr = nil
		return err
	}

	for _, data := range docs {
		c.store.docs(c.name)[uuid.NewString()] = c.materialize(data)
	}
	return nil
}

func (c *collection) Update(_ context.Context, id string, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	data, ok := c.store.docs(c.name)[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range c.materialize(fields) {
		data[k] = v
	}
	return nil
}

func (c *collection) Set(_ context.Context, id string, data map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.store.docs(c.name)
	existing, ok := docs[id]
	if !ok {
		docs[id] = c.materialize(data)
		return nil
	}
	for k, v := range c.materialize(data) {
		existing[k] = v
	}
	return nil
}

func (c *collection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	delete(c.store.docs(c.name), id)
	return nil
}

// materialize copies incoming data and resolves server timestamps.
func (c *collection) materialize(data map[string]any) map[string]any {
	now := c.store.Now()
	out := make(map[string]any, len(data))
	for k, v := range data {
		if v == store.ServerTimestamp {
			out[k] = now
		} else {
			out[k] = v
		}
	}
	return out
}

func matches(data map[string]any, filters []store.Filter) bool {
	for _, f := range filters {
		value, ok := data[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case store.OpEqual:
			if compare(value, f.Value) != 0 {
				return false
			}
		case store.OpGTE:
			if compare(value, f.Value) < 0 {
				return false
			}
		case store.OpLTE:
			if compare(value, f.Value) > 0 {
				return false
			}
		case store.OpIn:
			if !containedIn(value, f.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func containedIn(value, set any) bool {
	switch members := set.(type) {
	case []string:
		for _, m := range members {
			if compare(value, m) == 0 {
				return true
			}
		}
	case []any:
		for _, m := range members {
			if compare(value, m) == 0 {
				return true
			}
		}
	}
	return false
}

// compare orders two document field values. Mixed-type comparisons order by
// type name, mirroring Firestore's cross-type ordering being deterministic.
func compare(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.Compare(as, bs)
		}
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(typeName(a), typeName(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case float64, float32, int, int64:
		return "number"
	case time.Time:
		return "time"
	case string:
		return "string"
	default:
		return "other"
	}
}

func clone(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
