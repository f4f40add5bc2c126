package models

import "finbook/internal/store"

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction defaults applied on read and on import.
const (
	DefaultCategory        = "Uncategorized"
	SourceManual           = "manual"
	SourceImporter         = "sms-ai"
	ImportedDescription    = "Imported Transaction"
	TransactionsCollection = "transactions"
)

// Transaction represents a financial transaction. Manual entries carry only
// the core fields; imported entries additionally carry the bank metadata and
// the ref_id de-duplication key.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`

	// Import metadata
	Vendor   string `json:"vendor,omitempty"`
	Bank     string `json:"bank,omitempty"`
	Currency string `json:"currency,omitempty"`
	Merchant string `json:"merchant,omitempty"`
	RefID    string `json:"ref_id,omitempty"`
	Source   string `json:"source"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// TransactionFromDoc maps a raw document to a Transaction, applying the
// read-side defaults and normalizing every date field.
func TransactionFromDoc(doc store.Doc) Transaction {
	d := doc.Data
	return Transaction{
		ID:          doc.ID,
		UserID:      asString(d["userId"]),
		Amount:      asFloat(d["amount"]),
		Type:        TransactionType(stringOr(d["type"], string(TransactionTypeExpense))),
		Date:        ISOString(d["date"]),
		Description: asString(d["description"]),
		Category:    stringOr(d["category"], DefaultCategory),
		Vendor:      asString(d["vendor"]),
		Bank:        asString(d["bank"]),
		Currency:    asString(d["currency"]),
		Merchant:    asString(d["merchant"]),
		RefID:       asString(d["ref_id"]),
		Source:      stringOr(d["source"], SourceManual),
		CreatedAt:   ISOString(d["createdAt"]),
		UpdatedAt:   ISOString(d["updatedAt"]),
	}
}

// CategoryFeedbackCollection stores category corrections for classifier
// training.
const CategoryFeedbackCollection = "ai_category_corrections"
