package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"finbook/internal/store"
)

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_document", func(t *testing.T) {
		st := New()

		_, err := st.Collection("things").Get(ctx, "nope")
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("round_trip", func(t *testing.T) {
		st := New()
		coll := st.Collection("things")

		id, err := coll.Create(ctx, map[string]any{"name": "widget"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		doc, err := coll.Get(ctx, id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if doc.Data["name"] != "widget" {
			t.Errorf("expected name widget, got %v", doc.Data["name"])
		}
	})
}

func TestServerTimestamp(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	st := New()
	st.Now = func() time.Time { return fixed }
	coll := st.Collection("things")

	id, err := coll.Create(ctx, map[string]any{"createdAt": store.ServerTimestamp})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	doc, err := coll.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got, ok := doc.Data["createdAt"].(time.Time)
	if !ok || !got.Equal(fixed) {
		t.Errorf("expected resolved timestamp %v, got %v", fixed, doc.Data["createdAt"])
	}
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Store, store.Collection) {
		t.Helper()
		st := New()
		coll := st.Collection("things")
		for _, d := range []map[string]any{
			{"owner": "a", "rank": float64(3), "tag": "x"},
			{"owner": "a", "rank": float64(1), "tag": "y"},
			{"owner": "b", "rank": float64(2), "tag": "x"},
		} {
			if _, err := coll.Create(ctx, d); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}
		return st, coll
	}

	t.Run("equality_filter", func(t *testing.T) {
		_, coll := seed(t)

		docs, err := coll.Query(ctx, store.Query{
			Filters: []store.Filter{{Field: "owner", Op: store.OpEqual, Value: "a"}},
		})
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("expected 2 docs, got %d", len(docs))
		}
	})

	t.Run("range_filters", func(t *testing.T) {
		_, coll := seed(t)

		docs, err := coll.Query(ctx, store.Query{
			Filters: []store.Filter{
				{Field: "rank", Op: store.OpGTE, Value: float64(2)},
				{Field: "rank", Op: store.OpLTE, Value: float64(3)},
			},
		})
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("expected 2 docs, got %d", len(docs))
		}
	})

	t.Run("in_filter", func(t *testing.T) {
		_, coll := seed(t)

		docs, err := coll.Query(ctx, store.Query{
			Filters: []store.Filter{{Field: "tag", Op: store.OpIn, Value: []string{"y", "z"}}},
		})
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(docs) != 1 {
			t.Errorf("expected 1 doc, got %d", len(docs))
		}
	})

	t.Run("descending_order_with_limit", func(t *testing.T) {
		_, coll := seed(t)

		docs, err := coll.Query(ctx, store.Query{
			OrderBy: "rank",
			Desc:    true,
			Limit:   2,
		})
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("expected 2 docs, got %d", len(docs))
		}
		if docs[0].Data["rank"] != float64(3) || docs[1].Data["rank"] != float64(2) {
			t.Errorf("expected ranks [3 2], got [%v %v]", docs[0].Data["rank"], docs[1].Data["rank"])
		}
	})
}

// Reads of a collection that has never been written must be safe to run
// concurrently: they take only the read lock, so they must not mutate the
// collection table. Run with -race.
func TestConcurrentReadsOnFreshCollection(t *testing.T) {
	ctx := context.Background()
	st := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			coll := st.Collection(fmt.Sprintf("fresh-%d", i%2))

			if _, err := coll.Get(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			docs, err := coll.Query(ctx, store.Query{
				Filters: []store.Filter{{Field: "owner", Op: store.OpEqual, Value: "a"}},
			})
			if err != nil {
				t.Errorf("query failed: %v", err)
			}
			if len(docs) != 0 {
				t.Errorf("expected no docs, got %d", len(docs))
			}
		}(i)
	}
	wg.Wait()
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	ctx := context.Background()
	st := New()
	coll := st.Collection("things")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := coll.Create(ctx, map[string]any{"n": float64(i)}); err != nil {
				t.Errorf("create failed: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := coll.Query(ctx, store.Query{}); err != nil {
				t.Errorf("query failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if st.Len("things") != 4 {
		t.Errorf("expected 4 docs, got %d", st.Len("things"))
	}
}

func TestCreateAll(t *testing.T) {
	ctx := context.Background()

	t.Run("atomic_write", func(t *testing.T) {
		st := New()
		err := st.Collection("things").CreateAll(ctx, []map[string]any{
			{"n": float64(1)},
			{"n": float64(2)},
		})
		if err != nil {
			t.Fatalf("create all failed: %v", err)
		}
		if st.Len("things") != 2 {
			t.Errorf("expected 2 docs, got %d", st.Len("things"))
		}
	})

	t.Run("injected_failure_writes_nothing", func(t *testing.T) {
		st := New()
		st.BatchErr = errors.New("boom")

		err := st.Collection("things").CreateAll(ctx, []map[string]any{{"n": float64(1)}})
		if err == nil {
			t.Fatal("expected injected error")
		}
		if st.Len("things") != 0 {
			t.Errorf("expected empty collection, got %d docs", st.Len("things"))
		}

		// The failure is one-shot: the next batch succeeds.
		if err := st.Collection("things").CreateAll(ctx, []map[string]any{{"n": float64(2)}}); err != nil {
			t.Fatalf("expected recovery, got %v", err)
		}
	})
}

func TestSetMerges(t *testing.T) {
	ctx := context.Background()

	st := New()
	coll := st.Collection("settings")

	if err := coll.Set(ctx, "user-1", map[string]any{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := coll.Set(ctx, "user-1", map[string]any{"b": "3"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	doc, err := coll.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if doc.Data["a"] != "1" || doc.Data["b"] != "3" {
		t.Errorf("expected merged {a:1, b:3}, got %v", doc.Data)
	}
}

func TestCloneIsolation(t *testing.T) {
	ctx := context.Background()

	st := New()
	coll := st.Collection("things")
	id, err := coll.Create(ctx, map[string]any{"name": "widget"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	doc, err := coll.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	doc.Data["name"] = "mutated"

	again, err := coll.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Data["name"] != "widget" {
		t.Errorf("expected stored doc unchanged, got %v", again.Data["name"])
	}
}
