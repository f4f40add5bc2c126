package models

import "finbook/internal/store"

// BudgetsCollection is the budget document collection.
const BudgetsCollection = "budgets"

// Budget represents a spending budget for one category over a date range.
type Budget struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	Category       string  `json:"category"`
	BudgetedAmount float64 `json:"budgetedAmount"`
	SpentAmount    float64 `json:"spentAmount"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

// BudgetFromDoc maps a raw document to a Budget.
func BudgetFromDoc(doc store.Doc) Budget {
	d := doc.Data
	return Budget{
		ID:             doc.ID,
		UserID:         asString(d["userId"]),
		Category:       stringOr(d["category"], DefaultCategory),
		BudgetedAmount: asFloat(d["budgetedAmount"]),
		SpentAmount:    asFloat(d["spentAmount"]),
		StartDate:      ISOString(d["startDate"]),
		EndDate:        ISOString(d["endDate"]),
		CreatedAt:      ISOString(d["createdAt"]),
		UpdatedAt:      ISOString(d["updatedAt"]),
	}
}
