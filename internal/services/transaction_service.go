package services

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "finbook/internal/errors"
	"finbook/internal/logger"
	"finbook/internal/models"
	"finbook/internal/store"
)

// manualDedupWindow is the rolling window within which a manual entry with
// equal owner, amount, and description is absorbed instead of created.
const manualDedupWindow = 30 * time.Second

// transactionService handles transaction-related business logic.
type transactionService struct {
	store store.Store

	// now supplies the wall clock for the manual de-duplication window.
	now func() time.Time

	// importMu guards importLocks; each owner gets one mutex so concurrent
	// import calls for the same owner serialize instead of racing the
	// read-then-write duplicate check.
	importMu    sync.Mutex
	importLocks map[string]*sync.Mutex
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(st store.Store) TransactionServicer {
	return &transactionService{
		store:       st,
		now:         time.Now,
		importLocks: make(map[string]*sync.Mutex),
	}
}

func (s *transactionService) transactions() store.Collection {
	return s.store.Collection(models.TransactionsCollection)
}

// Create creates a manual transaction. A submission matching an existing
// record by owner, amount, and description within the last 30 seconds is a
// client retry: the existing record is returned unchanged and nothing is
// written.
func (s *transactionService) Create(
	ctx context.Context,
	userID string,
	amount float64,
	description, date string,
	txType models.TransactionType,
	category string,
) (*models.Transaction, error) {
	coll := s.transactions()

	cutoff := s.now().Add(-manualDedupWindow)
	existing, err := coll.Query(ctx, store.Query{
		Filters: []store.Filter{
			{Field: "userId", Op: store.OpEqual, Value: userID},
			{Field: "amount", Op: store.OpEqual, Value: amount},
			{Field: "description", Op: store.OpEqual, Value: description},
			{Field: "createdAt", Op: store.OpGTE, Value: cutoff},
		},
		Limit: 1,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(existing) > 0 {
		logger.Get().Warnw("duplicate manual transaction within window, returning existing",
			"user_id", userID,
			"existing_id", existing[0].ID,
		)
		tx := models.TransactionFromDoc(existing[0])
		return &tx, nil
	}

	id, err := coll.Create(ctx, map[string]any{
		"userId":      userID,
		"amount":      amount,
		"description": description,
		"date":        date,
		"type":        string(txType),
		"category":    category,
		"source":      models.SourceManual,
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Read back so the response carries the store-assigned timestamps.
	doc, err := coll.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tx := models.TransactionFromDoc(*doc)
	return &tx, nil
}

// List returns the owner's transactions, optionally filtered, newest first.
func (s *transactionService) List(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error) {
	filters := []store.Filter{
		{Field: "userId", Op: store.OpEqual, Value: userID},
	}
	if filter.Category != "" {
		filters = append(filters, store.Filter{Field: "category", Op: store.OpEqual, Value: filter.Category})
	}
	if filter.Type != "" {
		filters = append(filters, store.Filter{Field: "type", Op: store.OpEqual, Value: filter.Type})
	}
	if filter.StartDate != "" {
		filters = append(filters, store.Filter{Field: "date", Op: store.OpGTE, Value: filter.StartDate})
	}
	if filter.EndDate != "" {
		filters = append(filters, store.Filter{Field: "date", Op: store.OpLTE, Value: filter.EndDate})
	}

	docs, err := s.transactions().Query(ctx, store.Query{
		Filters: filters,
		OrderBy: "date",
		Desc:    true,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions := make([]models.Transaction, 0, len(docs))
	for _, doc := range docs {
		transactions = append(transactions, models.TransactionFromDoc(doc))
	}
	return transactions, nil
}

// getOwned fetches a transaction and verifies ownership. A record owned by
// another user is reported as not found.
func (s *transactionService) getOwned(ctx context.Context, userID, transactionID string) (*store.Doc, error) {
	doc, err := s.transactions().Get(ctx, transactionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if owner, _ := doc.Data["userId"].(string); owner != userID {
		return nil, apperrors.ErrTransactionNotFound
	}
	return doc, nil
}

// Update applies a partial update to an owned transaction and refreshes the
// update timestamp. A date string is re-parsed into a store timestamp.
func (s *transactionService) Update(ctx context.Context, userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	if _, err := s.getOwned(ctx, userID, transactionID); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"updatedAt": store.ServerTimestamp,
	}
	if fields.Amount != nil {
		updates["amount"] = *fields.Amount
	}
	if fields.Type != nil {
		updates["type"] = string(*fields.Type)
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Date != nil {
		parsed, err := models.ParseTime(*fields.Date)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		updates["date"] = parsed
	}

	coll := s.transactions()
	if err := coll.Update(ctx, transactionID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, transactionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tx := models.TransactionFromDoc(*doc)
	return &tx, nil
}

// Delete removes an owned transaction.
func (s *transactionService) Delete(ctx context.Context, userID, transactionID string) error {
	if _, err := s.getOwned(ctx, userID, transactionID); err != nil {
		return err
	}
	if err := s.transactions().Delete(ctx, transactionID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RecordCategoryFeedback persists a category correction for future
// classifier training.
func (s *transactionService) RecordCategoryFeedback(ctx context.Context, userID, transactionID, description, oldCategory, newCategory string) error {
	_, err := s.store.Collection(models.CategoryFeedbackCollection).Create(ctx, map[string]any{
		"userId":        userID,
		"transactionId": transactionID,
		"description":   description,
		"oldCategory":   oldCategory,
		"newCategory":   newCategory,
		"createdAt":     store.ServerTimestamp,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	logger.Get().Infow("stored category feedback",
		"user_id", userID,
		"transaction_id", transactionID,
	)
	return nil
}
