package models

import "finbook/internal/store"

// InvestmentsCollection is the investment document collection.
const InvestmentsCollection = "investments"

// InvestmentType classifies an investment holding.
type InvestmentType string

const (
	InvestmentTypeStock      InvestmentType = "stock"
	InvestmentTypeBond       InvestmentType = "bond"
	InvestmentTypeMutualFund InvestmentType = "mutual_fund"
	InvestmentTypeETF        InvestmentType = "etf"
	InvestmentTypeCrypto     InvestmentType = "crypto"
	InvestmentTypeOther      InvestmentType = "other"
)

// Investment represents an investment holding and its current valuation.
type Investment struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Name           string         `json:"name"`
	Type           InvestmentType `json:"type"`
	CurrentValue   float64        `json:"currentValue"`
	InvestedAmount float64        `json:"investedAmount"`
	Quantity       *float64       `json:"quantity,omitempty"`
	LastUpdated    string         `json:"lastUpdated,omitempty"`
	CreatedAt      string         `json:"createdAt,omitempty"`
	UpdatedAt      string         `json:"updatedAt,omitempty"`
}

// InvestmentFromDoc maps a raw document to an Investment.
func InvestmentFromDoc(doc store.Doc) Investment {
	d := doc.Data
	inv := Investment{
		ID:             doc.ID,
		UserID:         asString(d["userId"]),
		Name:           asString(d["name"]),
		Type:           InvestmentType(stringOr(d["type"], string(InvestmentTypeOther))),
		CurrentValue:   asFloat(d["currentValue"]),
		InvestedAmount: asFloat(d["investedAmount"]),
		LastUpdated:    ISOString(d["lastUpdated"]),
		CreatedAt:      ISOString(d["createdAt"]),
		UpdatedAt:      ISOString(d["updatedAt"]),
	}
	if _, ok := d["quantity"]; ok {
		q := asFloat(d["quantity"])
		inv.Quantity = &q
	}
	return inv
}
