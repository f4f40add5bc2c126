package services

import (
	"context"
	"errors"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/store"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	store store.Store
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(st store.Store) InvestmentServicer {
	return &investmentService{store: st}
}

func (s *investmentService) investments() store.Collection {
	return s.store.Collection(models.InvestmentsCollection)
}

// Create creates an investment record.
func (s *investmentService) Create(ctx context.Context, userID string, in InvestmentInput) (*models.Investment, error) {
	data := map[string]any{
		"userId":         userID,
		"name":           in.Name,
		"type":           string(in.Type),
		"currentValue":   in.CurrentValue,
		"investedAmount": in.InvestedAmount,
		"lastUpdated":    store.ServerTimestamp,
		"createdAt":      store.ServerTimestamp,
		"updatedAt":      store.ServerTimestamp,
	}
	if in.Quantity != nil {
		data["quantity"] = *in.Quantity
	}

	coll := s.investments()
	id, err := coll.Create(ctx, data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	investment := models.InvestmentFromDoc(*doc)
	return &investment, nil
}

// List returns all investments belonging to the user.
func (s *investmentService) List(ctx context.Context, userID string) ([]models.Investment, error) {
	docs, err := queryOwned(ctx, s.investments(), userID)
	if err != nil {
		return nil, err
	}
	investments := make([]models.Investment, 0, len(docs))
	for _, doc := range docs {
		investments = append(investments, models.InvestmentFromDoc(doc))
	}
	return investments, nil
}

// GetByID returns an investment if it belongs to the user.
func (s *investmentService) GetByID(ctx context.Context, userID, investmentID string) (*models.Investment, error) {
	doc, err := getOwnedDoc(ctx, s.investments(), userID, investmentID, apperrors.ErrInvestmentNotFound)
	if err != nil {
		return nil, err
	}
	investment := models.InvestmentFromDoc(*doc)
	return &investment, nil
}

// Update applies a partial update to an owned investment. Updates always
// refresh the valuation timestamp alongside the update timestamp.
func (s *investmentService) Update(ctx context.Context, userID, investmentID string, fields InvestmentUpdateFields) (*models.Investment, error) {
	coll := s.investments()
	if _, err := getOwnedDoc(ctx, coll, userID, investmentID, apperrors.ErrInvestmentNotFound); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"lastUpdated": store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Type != nil {
		updates["type"] = string(*fields.Type)
	}
	if fields.CurrentValue != nil {
		updates["currentValue"] = *fields.CurrentValue
	}
	if fields.InvestedAmount != nil {
		updates["investedAmount"] = *fields.InvestedAmount
	}
	if fields.Quantity != nil {
		updates["quantity"] = *fields.Quantity
	}

	if err := coll.Update(ctx, investmentID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, investmentID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	investment := models.InvestmentFromDoc(*doc)
	return &investment, nil
}

// Delete removes an owned investment.
func (s *investmentService) Delete(ctx context.Context, userID, investmentID string) error {
	coll := s.investments()
	if _, err := getOwnedDoc(ctx, coll, userID, investmentID, apperrors.ErrInvestmentNotFound); err != nil {
		return err
	}
	if err := coll.Delete(ctx, investmentID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
