package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"finbook/internal/models"
	"finbook/internal/store/memory"
	"finbook/internal/testutil"
)

func importRecord(refID string, amount float64) ImportRecord {
	return ImportRecord{
		Amount: amount,
		Type:   "expense",
		Date:   "2026-02-01",
		Vendor: "Acme Grocers",
		RefID:  refID,
	}
}

func assertReport(t *testing.T, report *ImportReport, created, duplicates, errs int) {
	t.Helper()

	if report.Created != created || report.Duplicates != duplicates || report.Errors != errs {
		t.Fatalf("expected report {created: %d, duplicates: %d, errors: %d}, got {created: %d, duplicates: %d, errors: %d}",
			created, duplicates, errs, report.Created, report.Duplicates, report.Errors)
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_new_records", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		report, err := svc.Import(ctx, "user-1", []ImportRecord{
			importRecord("ref-1", 12.50),
			importRecord("ref-2", 7.25),
		})
		testutil.AssertNoError(t, err)
		assertReport(t, report, 2, 0, 0)

		if got := st.Len(models.TransactionsCollection); got != 2 {
			t.Errorf("expected 2 stored transactions, got %d", got)
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		report, err := svc.Import(ctx, "user-1", nil)
		testutil.AssertNoError(t, err)
		assertReport(t, report, 0, 0, 0)
	})

	t.Run("no_keyed_records_all_errors", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		report, err := svc.Import(ctx, "user-1", []ImportRecord{
			importRecord("", 1),
			importRecord("", 2),
			importRecord("", 3),
		})
		testutil.AssertNoError(t, err)
		assertReport(t, report, 0, 0, 3)

		if got := st.Len(models.TransactionsCollection); got != 0 {
			t.Errorf("expected no stored transactions, got %d", got)
		}
	})

	t.Run("mixed_batch", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		report, err := svc.Import(ctx, "user-1", []ImportRecord{
			importRecord("a", 10),
			importRecord("a", 10),
			importRecord("", 5),
		})
		testutil.AssertNoError(t, err)
		assertReport(t, report, 1, 1, 1)
	})

	t.Run("existing_ref_id_is_duplicate", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"ref_id": "ref-1"})

		report, err := svc.Import(ctx, "user-1", []ImportRecord{
			importRecord("ref-1", 12.50),
			importRecord("ref-2", 7.25),
		})
		testutil.AssertNoError(t, err)
		assertReport(t, report, 1, 1, 0)
	})

	t.Run("reimport_is_idempotent", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		batch := []ImportRecord{
			importRecord("ref-1", 12.50),
			importRecord("ref-2", 7.25),
			importRecord("ref-3", 3.10),
		}

		report, err := svc.Import(ctx, "user-1", batch)
		testutil.AssertNoError(t, err)
		assertReport(t, report, 3, 0, 0)

		report, err = svc.Import(ctx, "user-1", batch)
		testutil.AssertNoError(t, err)
		assertReport(t, report, 0, 3, 0)

		if got := st.Len(models.TransactionsCollection); got != 3 {
			t.Errorf("expected 3 stored transactions after re-import, got %d", got)
		}
	})

	t.Run("ref_ids_scoped_per_owner", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)
		testutil.SeedTransaction(t, st, "user-2", map[string]any{"ref_id": "ref-1"})

		report, err := svc.Import(ctx, "user-1", []ImportRecord{
			importRecord("ref-1", 12.50),
		})
		testutil.AssertNoError(t, err)
		assertReport(t, report, 1, 0, 0)
	})

	t.Run("batch_commit_failure_reclassifies_created", func(t *testing.T) {
		st := memory.New()
		st.BatchErr = errors.New("commit failed")
		svc := NewTransactionService(st)
		testutil.SeedTransaction(t, st, "user-1", map[string]any{"ref_id": "ref-0"})

		report, err := svc.Import(ctx, "user-1", []ImportRecord{
			importRecord("ref-0", 1),
			importRecord("ref-1", 2),
			importRecord("ref-2", 3),
			importRecord("", 4),
		})
		testutil.AssertNoError(t, err)
		assertReport(t, report, 0, 1, 3)

		// Only the pre-seeded record survives.
		if got := st.Len(models.TransactionsCollection); got != 1 {
			t.Errorf("expected 1 stored transaction, got %d", got)
		}
	})

	t.Run("large_batch_chunks_existing_key_lookup", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		var batch []ImportRecord
		for i := 0; i < 75; i++ {
			batch = append(batch, importRecord(fmt.Sprintf("ref-%03d", i), float64(i)))
		}
		for i := 0; i < 75; i += 2 {
			testutil.SeedTransaction(t, st, "user-1", map[string]any{"ref_id": fmt.Sprintf("ref-%03d", i)})
		}

		report, err := svc.Import(ctx, "user-1", batch)
		testutil.AssertNoError(t, err)
		assertReport(t, report, 37, 38, 0)
	})

	t.Run("applies_import_defaults", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		_, err := svc.Import(ctx, "user-1", []ImportRecord{
			{Amount: 9.99, Type: "expense", Date: "2026-02-01", RefID: "ref-1"},
		})
		testutil.AssertNoError(t, err)

		list, err := svc.List(ctx, "user-1", TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(list))
		}
		tx := list[0]
		if tx.Description != models.ImportedDescription {
			t.Errorf("expected description %q, got %q", models.ImportedDescription, tx.Description)
		}
		if tx.Category != models.DefaultCategory {
			t.Errorf("expected category %q, got %q", models.DefaultCategory, tx.Category)
		}
		if tx.Source != models.SourceImporter {
			t.Errorf("expected source %q, got %q", models.SourceImporter, tx.Source)
		}
	})

	t.Run("vendor_used_as_description_fallback", func(t *testing.T) {
		st := memory.New()
		svc := NewTransactionService(st)

		_, err := svc.Import(ctx, "user-1", []ImportRecord{
			{Amount: 4.20, Type: "expense", Date: "2026-02-01", Vendor: "Corner Cafe", RefID: "ref-1"},
		})
		testutil.AssertNoError(t, err)

		list, err := svc.List(ctx, "user-1", TransactionFilter{})
		testutil.AssertNoError(t, err)
		if list[0].Description != "Corner Cafe" {
			t.Errorf("expected vendor fallback description, got %q", list[0].Description)
		}
	})

	t.Run("counters_always_sum_to_batch_length", func(t *testing.T) {
		batches := [][]ImportRecord{
			{importRecord("a", 1), importRecord("", 2)},
			{importRecord("a", 1), importRecord("a", 1), importRecord("b", 2)},
			{importRecord("", 1), importRecord("", 2)},
			{},
		}
		for i, batch := range batches {
			st := memory.New()
			svc := NewTransactionService(st)
			report, err := svc.Import(ctx, "user-1", batch)
			testutil.AssertNoError(t, err)
			if sum := report.Created + report.Duplicates + report.Errors; sum != len(batch) {
				t.Errorf("batch %d: counters sum to %d, want %d", i, sum, len(batch))
			}
		}
	})
}
