package services

import (
	"context"
	"errors"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/store"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	store store.Store
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(st store.Store) BudgetServicer {
	return &budgetService{store: st}
}

func (s *budgetService) budgets() store.Collection {
	return s.store.Collection(models.BudgetsCollection)
}

// Create creates a budget. Spent amount starts at zero.
func (s *budgetService) Create(ctx context.Context, userID string, in BudgetInput) (*models.Budget, error) {
	startDate, err := models.ParseTime(in.StartDate)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	endDate, err := models.ParseTime(in.EndDate)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	coll := s.budgets()
	id, err := coll.Create(ctx, map[string]any{
		"userId":         userID,
		"category":       in.Category,
		"budgetedAmount": in.BudgetedAmount,
		"spentAmount":    float64(0),
		"startDate":      startDate,
		"endDate":        endDate,
		"createdAt":      store.ServerTimestamp,
		"updatedAt":      store.ServerTimestamp,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget := models.BudgetFromDoc(*doc)
	return &budget, nil
}

// List returns all budgets belonging to the user.
func (s *budgetService) List(ctx context.Context, userID string) ([]models.Budget, error) {
	docs, err := queryOwned(ctx, s.budgets(), userID)
	if err != nil {
		return nil, err
	}
	budgets := make([]models.Budget, 0, len(docs))
	for _, doc := range docs {
		budgets = append(budgets, models.BudgetFromDoc(doc))
	}
	return budgets, nil
}

// GetByID returns a budget if it belongs to the user.
func (s *budgetService) GetByID(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	doc, err := getOwnedDoc(ctx, s.budgets(), userID, budgetID, apperrors.ErrBudgetNotFound)
	if err != nil {
		return nil, err
	}
	budget := models.BudgetFromDoc(*doc)
	return &budget, nil
}

// Update applies a partial update to an owned budget.
func (s *budgetService) Update(ctx context.Context, userID, budgetID string, fields BudgetUpdateFields) (*models.Budget, error) {
	coll := s.budgets()
	if _, err := getOwnedDoc(ctx, coll, userID, budgetID, apperrors.ErrBudgetNotFound); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"updatedAt": store.ServerTimestamp,
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.BudgetedAmount != nil {
		updates["budgetedAmount"] = *fields.BudgetedAmount
	}
	if fields.SpentAmount != nil {
		updates["spentAmount"] = *fields.SpentAmount
	}
	if fields.StartDate != nil {
		parsed, err := models.ParseTime(*fields.StartDate)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		updates["startDate"] = parsed
	}
	if fields.EndDate != nil {
		parsed, err := models.ParseTime(*fields.EndDate)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		updates["endDate"] = parsed
	}

	if err := coll.Update(ctx, budgetID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, budgetID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget := models.BudgetFromDoc(*doc)
	return &budget, nil
}

// Delete removes an owned budget.
func (s *budgetService) Delete(ctx context.Context, userID, budgetID string) error {
	coll := s.budgets()
	if _, err := getOwnedDoc(ctx, coll, userID, budgetID, apperrors.ErrBudgetNotFound); err != nil {
		return err
	}
	if err := coll.Delete(ctx, budgetID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
