package models

import "finbook/internal/store"

// DebtsCollection is the debt document collection.
const DebtsCollection = "debts"

// DebtType classifies a debt.
type DebtType string

const (
	DebtTypeLoan       DebtType = "loan"
	DebtTypeCreditCard DebtType = "credit_card"
	DebtTypeMortgage   DebtType = "mortgage"
	DebtTypeOther      DebtType = "other"
)

// Debt represents an outstanding debt with its rate and minimum payment.
type Debt struct {
	ID             string   `json:"id"`
	UserID         string   `json:"userId"`
	Name           string   `json:"name"`
	Type           DebtType `json:"type"`
	Balance        float64  `json:"balance"`
	InterestRate   float64  `json:"interestRate"`
	MinimumPayment float64  `json:"minimumPayment"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// DebtFromDoc maps a raw document to a Debt.
func DebtFromDoc(doc store.Doc) Debt {
	d := doc.Data
	return Debt{
		ID:             doc.ID,
		UserID:         asString(d["userId"]),
		Name:           asString(d["name"]),
		Type:           DebtType(stringOr(d["type"], string(DebtTypeOther))),
		Balance:        asFloat(d["balance"]),
		InterestRate:   asFloat(d["interestRate"]),
		MinimumPayment: asFloat(d["minimumPayment"]),
		CreatedAt:      ISOString(d["createdAt"]),
		UpdatedAt:      ISOString(d["updatedAt"]),
	}
}
