package models

import (
	"testing"
	"time"

	"finbook/internal/store"
)

func TestTransactionFromDoc(t *testing.T) {
	t.Run("full_document", func(t *testing.T) {
		created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tx := TransactionFromDoc(store.Doc{
			ID: "tx-1",
			Data: map[string]any{
				"userId":      "user-1",
				"amount":      42.5,
				"type":        "income",
				"date":        "2026-03-01",
				"description": "Salary",
				"category":    "Other",
				"ref_id":      "ref-1",
				"source":      "sms-ai",
				"createdAt":   created,
			},
		})

		if tx.ID != "tx-1" || tx.UserID != "user-1" || tx.Amount != 42.5 {
			t.Errorf("unexpected transaction %+v", tx)
		}
		if tx.Type != TransactionTypeIncome {
			t.Errorf("expected income, got %q", tx.Type)
		}
		if tx.RefID != "ref-1" || tx.Source != "sms-ai" {
			t.Errorf("unexpected provenance fields %+v", tx)
		}
		if tx.CreatedAt != "2026-03-01T12:00:00Z" {
			t.Errorf("expected normalized createdAt, got %q", tx.CreatedAt)
		}
	})

	t.Run("sparse_document_gets_defaults", func(t *testing.T) {
		tx := TransactionFromDoc(store.Doc{ID: "tx-2", Data: map[string]any{}})

		if tx.Type != TransactionTypeExpense {
			t.Errorf("expected default type expense, got %q", tx.Type)
		}
		if tx.Category != DefaultCategory {
			t.Errorf("expected default category, got %q", tx.Category)
		}
		if tx.Source != SourceManual {
			t.Errorf("expected default source, got %q", tx.Source)
		}
	})

	t.Run("integral_amount", func(t *testing.T) {
		tx := TransactionFromDoc(store.Doc{ID: "tx-3", Data: map[string]any{"amount": int64(7)}})
		if tx.Amount != 7 {
			t.Errorf("expected amount 7, got %v", tx.Amount)
		}
	})
}
