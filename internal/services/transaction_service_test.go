package services

import (
	"context"
	"testing"
	"time"

	"finbook/internal/models"
	"finbook/internal/store/memory"
	"finbook/internal/testutil"
)

// newClockedService wires a transaction service and its store to a shared
// movable clock.
func newClockedService(st *memory.Store, start time.Time) (*transactionService, *time.Time) {
	at := start
	clock := func() time.Time { return at }
	st.Now = clock

	svc := NewTransactionService(st).(*transactionService)
	svc.now = clock
	return svc, &at
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates_and_reads_back", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		tx, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Amount != 42.50 {
			t.Errorf("expected amount 42.50, got %v", tx.Amount)
		}
		if tx.Source != models.SourceManual {
			t.Errorf("expected source %q, got %q", models.SourceManual, tx.Source)
		}
		if tx.CreatedAt == "" {
			t.Error("expected server-assigned createdAt")
		}
	})

	t.Run("duplicate_within_window_returns_existing", func(t *testing.T) {
		st := memory.New()
		svc, at := newClockedService(st, start)

		first, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		*at = start.Add(10 * time.Second)
		second, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("expected existing transaction %s, got new %s", first.ID, second.ID)
		}
		if got := st.Len(models.TransactionsCollection); got != 1 {
			t.Errorf("expected 1 stored transaction, got %d", got)
		}
	})

	t.Run("duplicate_after_window_creates_new", func(t *testing.T) {
		st := memory.New()
		svc, at := newClockedService(st, start)

		first, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		*at = start.Add(31 * time.Second)
		second, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		if second.ID == first.ID {
			t.Error("expected a new transaction after the window elapsed")
		}
		if got := st.Len(models.TransactionsCollection); got != 2 {
			t.Errorf("expected 2 stored transactions, got %d", got)
		}
	})

	t.Run("different_description_is_not_a_duplicate", func(t *testing.T) {
		st := memory.New()
		svc, at := newClockedService(st, start)

		first, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		*at = start.Add(5 * time.Second)
		second, err := svc.Create(ctx, "user-1", 42.50, "Pharmacy", "2026-03-01", models.TransactionTypeExpense, "Health")
		testutil.AssertNoError(t, err)

		if second.ID == first.ID {
			t.Error("expected a distinct transaction for a different description")
		}
	})

	t.Run("window_is_per_owner", func(t *testing.T) {
		st := memory.New()
		svc, at := newClockedService(st, start)

		_, err := svc.Create(ctx, "user-1", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		*at = start.Add(5 * time.Second)
		_, err = svc.Create(ctx, "user-2", 42.50, "Groceries", "2026-03-01", models.TransactionTypeExpense, "Food")
		testutil.AssertNoError(t, err)

		if got := st.Len(models.TransactionsCollection); got != 2 {
			t.Errorf("expected 2 stored transactions, got %d", got)
		}
	})
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("newest_first", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"date": "2026-01-01", "description": "old"})
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"date": "2026-02-01", "description": "new"})

		list, err := svc.List(ctx, "user-1", TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(list) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(list))
		}
		if list[0].Description != "new" || list[1].Description != "old" {
			t.Errorf("expected newest first, got [%s, %s]", list[0].Description, list[1].Description)
		}
	})

	t.Run("owner_isolation", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		testutil.SeedTransaction(t, st, "user-1", nil)
		testutil.SeedTransaction(t, st, "user-2", nil)

		list, err := svc.List(ctx, "user-1", TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Errorf("expected 1 transaction for user-1, got %d", len(list))
		}
	})

	t.Run("filters_combine", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"category": "Food", "type": "expense", "date": "2026-01-10"})
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"category": "Food", "type": "expense", "date": "2026-03-10"})
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"category": "Bills", "type": "expense", "date": "2026-01-15"})
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"category": "Food", "type": "income", "date": "2026-01-20"})

		list, err := svc.List(ctx, "user-1", TransactionFilter{
			Category:  "Food",
			Type:      "expense",
			StartDate: "2026-01-01",
			EndDate:   "2026-01-31",
		})
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Fatalf("expected 1 matching transaction, got %d", len(list))
		}
		if list[0].Date != "2026-01-10" {
			t.Errorf("expected the January food expense, got date %s", list[0].Date)
		}
	})

	t.Run("empty_result_is_empty_slice", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		list, err := svc.List(ctx, "user-1", TransactionFilter{})
		testutil.AssertNoError(t, err)
		if list == nil || len(list) != 0 {
			t.Errorf("expected empty slice, got %v", list)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		id := testutil.SeedTransaction(t, st, "user-1", map[string]any{"amount": float64(10), "category": "Food"})

		amount := 25.0
		tx, err := svc.Update(ctx, "user-1", id, TransactionUpdateFields{Amount: &amount})
		testutil.AssertNoError(t, err)

		if tx.Amount != 25.0 {
			t.Errorf("expected amount 25, got %v", tx.Amount)
		}
		if tx.Category != "Food" {
			t.Errorf("expected untouched category Food, got %q", tx.Category)
		}
	})

	t.Run("rejects_invalid_date", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		id := testutil.SeedTransaction(t, st, "user-1", nil)

		bad := "yesterday"
		_, err := svc.Update(ctx, "user-1", id, TransactionUpdateFields{Date: &bad})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("foreign_record_not_found", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		id := testutil.SeedTransaction(t, st, "user-1", nil)

		amount := 25.0
		_, err := svc.Update(ctx, "user-2", id, TransactionUpdateFields{Amount: &amount})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("missing_record_not_found", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		amount := 25.0
		_, err := svc.Update(ctx, "user-1", "no-such-id", TransactionUpdateFields{Amount: &amount})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes_owned_record", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		id := testutil.SeedTransaction(t, st, "user-1", nil)

		testutil.AssertNoError(t, svc.Delete(ctx, "user-1", id))
		if got := st.Len(models.TransactionsCollection); got != 0 {
			t.Errorf("expected empty collection, got %d documents", got)
		}
	})

	t.Run("foreign_record_not_found", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		id := testutil.SeedTransaction(t, st, "user-1", nil)

		err := svc.Delete(ctx, "user-2", id)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
		if got := st.Len(models.TransactionsCollection); got != 1 {
			t.Errorf("expected record to survive, got %d documents", got)
		}
	})
}

func TestRecordCategoryFeedback(t *testing.T) {
	ctx := context.Background()

	st := memory.New()
	svc := NewTransactionService(st)

	err := svc.RecordCategoryFeedback(ctx, "user-1", "tx-1", "STARBUCKS #4821", "Shopping", "Food")
	testutil.AssertNoError(t, err)

	if got := st.Len(models.CategoryFeedbackCollection); got != 1 {
		t.Errorf("expected 1 feedback document, got %d", got)
	}
}
