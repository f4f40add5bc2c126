package models

import "finbook/internal/store"

// GoalsCollection is the goal document collection.
const GoalsCollection = "goals"

// Goal represents a savings goal with a target amount and date.
type Goal struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate"`
	Category      string  `json:"category,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// GoalFromDoc maps a raw document to a Goal.
func GoalFromDoc(doc store.Doc) Goal {
	d := doc.Data
	return Goal{
		ID:            doc.ID,
		UserID:        asString(d["userId"]),
		Name:          asString(d["name"]),
		TargetAmount:  asFloat(d["targetAmount"]),
		CurrentAmount: asFloat(d["currentAmount"]),
		TargetDate:    ISOString(d["targetDate"]),
		Category:      asString(d["category"]),
		CreatedAt:     ISOString(d["createdAt"]),
		UpdatedAt:     ISOString(d["updatedAt"]),
	}
}
