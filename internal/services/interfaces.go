// Package services implements the business logic over the document store.
// Every service receives its store handle at construction; there is no
// package-global storage state.
package services

import (
	"context"

	"finbook/internal/models"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Category  string
	Type      string
	StartDate string
	EndDate   string
}

// TransactionUpdateFields carries a partial transaction update. Nil fields
// are left untouched.
type TransactionUpdateFields struct {
	Amount      *float64
	Type        *models.TransactionType
	Date        *string
	Description *string
	Category    *string
}

// ImportRecord is one externally sourced candidate transaction. RefID is the
// idempotency key; records lacking one are unimportable.
type ImportRecord struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Vendor      string  `json:"vendor"`
	Bank        string  `json:"bank"`
	Currency    string  `json:"currency"`
	Merchant    string  `json:"merchant"`
	RefID       string  `json:"ref_id"`
	Source      string  `json:"source"`
}

// ImportReport reconciles an import batch. The three counters always sum to
// the batch length.
type ImportReport struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// TransactionServicer handles transaction business logic, including the
// import/de-duplication engine and the manual de-duplication guard.
type TransactionServicer interface {
	Create(ctx context.Context, userID string, amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error)
	List(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	Delete(ctx context.Context, userID, transactionID string) error
	Import(ctx context.Context, userID string, records []ImportRecord) (*ImportReport, error)
	RecordCategoryFeedback(ctx context.Context, userID, transactionID, description, oldCategory, newCategory string) error
}

// BudgetInput carries the caller-supplied fields of a new budget.
type BudgetInput struct {
	Category       string
	BudgetedAmount float64
	StartDate      string
	EndDate        string
}

// BudgetUpdateFields carries a partial budget update.
type BudgetUpdateFields struct {
	Category       *string
	BudgetedAmount *float64
	SpentAmount    *float64
	StartDate      *string
	EndDate        *string
}

// BudgetServicer handles budget CRUD.
type BudgetServicer interface {
	Create(ctx context.Context, userID string, in BudgetInput) (*models.Budget, error)
	List(ctx context.Context, userID string) ([]models.Budget, error)
	GetByID(ctx context.Context, userID, budgetID string) (*models.Budget, error)
	Update(ctx context.Context, userID, budgetID string, fields BudgetUpdateFields) (*models.Budget, error)
	Delete(ctx context.Context, userID, budgetID string) error
}

// GoalInput carries the caller-supplied fields of a new goal.
type GoalInput struct {
	Name         string
	TargetAmount float64
	TargetDate   string
	Category     string
}

// GoalUpdateFields carries a partial goal update.
type GoalUpdateFields struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	TargetDate    *string
	Category      *string
}

// GoalServicer handles goal CRUD.
type GoalServicer interface {
	Create(ctx context.Context, userID string, in GoalInput) (*models.Goal, error)
	List(ctx context.Context, userID string) ([]models.Goal, error)
	GetByID(ctx context.Context, userID, goalID string) (*models.Goal, error)
	Update(ctx context.Context, userID, goalID string, fields GoalUpdateFields) (*models.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}

// DebtInput carries the caller-supplied fields of a new debt.
type DebtInput struct {
	Name           string
	Type           models.DebtType
	Balance        float64
	InterestRate   float64
	MinimumPayment float64
}

// DebtUpdateFields carries a partial debt update.
type DebtUpdateFields struct {
	Name           *string
	Type           *models.DebtType
	Balance        *float64
	InterestRate   *float64
	MinimumPayment *float64
}

// DebtServicer handles debt CRUD.
type DebtServicer interface {
	Create(ctx context.Context, userID string, in DebtInput) (*models.Debt, error)
	List(ctx context.Context, userID string) ([]models.Debt, error)
	GetByID(ctx context.Context, userID, debtID string) (*models.Debt, error)
	Update(ctx context.Context, userID, debtID string, fields DebtUpdateFields) (*models.Debt, error)
	Delete(ctx context.Context, userID, debtID string) error
}

// InvestmentInput carries the caller-supplied fields of a new investment.
type InvestmentInput struct {
	Name           string
	Type           models.InvestmentType
	CurrentValue   float64
	InvestedAmount float64
	Quantity       *float64
}

// InvestmentUpdateFields carries a partial investment update.
type InvestmentUpdateFields struct {
	Name           *string
	Type           *models.InvestmentType
	CurrentValue   *float64
	InvestedAmount *float64
	Quantity       *float64
}

// InvestmentServicer handles investment CRUD.
type InvestmentServicer interface {
	Create(ctx context.Context, userID string, in InvestmentInput) (*models.Investment, error)
	List(ctx context.Context, userID string) ([]models.Investment, error)
	GetByID(ctx context.Context, userID, investmentID string) (*models.Investment, error)
	Update(ctx context.Context, userID, investmentID string, fields InvestmentUpdateFields) (*models.Investment, error)
	Delete(ctx context.Context, userID, investmentID string) error
}

// CategoryServicer manages the per-user custom category list.
type CategoryServicer interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, name string) ([]string, error)
	Remove(ctx context.Context, userID, name string) ([]string, error)
}
