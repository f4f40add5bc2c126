package testutil

import (
	"context"
	"testing"

	"finbook/internal/models"
	"finbook/internal/store"
)

// SeedTransaction inserts a transaction document directly into the store,
// bypassing the service layer. overrides replace the default field values.
func SeedTransaction(t *testing.T, st store.Store, userID string, overrides map[string]any) string {
	t.Helper()

	data := map[string]any{
		"userId":      userID,
		"amount":      float64(10),
		"type":        string(models.TransactionTypeExpense),
		"date":        "2026-01-15",
		"description": "Seed transaction",
		"category":    models.DefaultCategory,
		"source":      models.SourceManual,
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	}
	for k, v := range overrides {
		data[k] = v
	}

	id, err := st.Collection(models.TransactionsCollection).Create(context.Background(), data)
	if err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return id
}
