package services

import (
	"context"
	"errors"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/store"
)

// debtService handles debt-related business logic.
type debtService struct {
	store store.Store
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(st store.Store) DebtServicer {
	return &debtService{store: st}
}

func (s *debtService) debts() store.Collection {
	return s.store.Collection(models.DebtsCollection)
}

// Create creates a debt record.
func (s *debtService) Create(ctx context.Context, userID string, in DebtInput) (*models.Debt, error) {
	coll := s.debts()
	id, err := coll.Create(ctx, map[string]any{
		"userId":         userID,
		"name":           in.Name,
		"type":           string(in.Type),
		"balance":        in.Balance,
		"interestRate":   in.InterestRate,
		"minimumPayment": in.MinimumPayment,
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
	debt := models.DebtFromDoc(*doc)
	return &debt, nil
}

// List returns all debts belonging to the user.
func (s *debtService) List(ctx context.Context, userID string) ([]models.Debt, error) {
	docs, err := queryOwned(ctx, s.debts(), userID)
	if err != nil {
		return nil, err
	}
	debts := make([]models.Debt, 0, len(docs))
	for _, doc := range docs {
		debts = append(debts, models.DebtFromDoc(doc))
	}
	return debts, nil
}

// GetByID returns a debt if it belongs to the user.
func (s *debtService) GetByID(ctx context.Context, userID, debtID string) (*models.Debt, error) {
	doc, err := getOwnedDoc(ctx, s.debts(), userID, debtID, apperrors.ErrDebtNotFound)
	if err != nil {
		return nil, err
	}
	debt := models.DebtFromDoc(*doc)
	return &debt, nil
}

// Update applies a partial update to an owned debt.
func (s *debtService) Update(ctx context.Context, userID, debtID string, fields DebtUpdateFields) (*models.Debt, error) {
	coll := s.debts()
	if _, err := getOwnedDoc(ctx, coll, userID, debtID, apperrors.ErrDebtNotFound); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"updatedAt": store.ServerTimestamp,
	}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Type != nil {
		updates["type"] = string(*fields.Type)
	}
	if fields.Balance != nil {
		updates["balance"] = *fields.Balance
	}
	if fields.InterestRate != nil {
		updates["interestRate"] = *fields.InterestRate
	}
	if fields.MinimumPayment != nil {
		updates["minimumPayment"] = *fields.MinimumPayment
	}

	if err := coll.Update(ctx, debtID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, debtID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	debt := models.DebtFromDoc(*doc)
	return &debt, nil
}

// Delete removes an owned debt.
func (s *debtService) Delete(ctx context.Context, userID, debtID string) error {
	coll := s.debts()
	if _, err := getOwnedDoc(ctx, coll, userID, debtID, apperrors.ErrDebtNotFound); err != nil {
		return err
	}
	if err := coll.Delete(ctx, debtID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
