package services

import (
	"context"
	"errors"

	apperrors "finbook/internal/errors"
	"finbook/internal/logger"
	"finbook/internal/models"
	"finbook/internal/store"
)

// categoryService manages the per-user category list stored on the user's
// settings document.
type categoryService struct {
	store store.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(st store.Store) CategoryServicer {
	return &categoryService{store: st}
}

func (s *categoryService) settings() store.Collection {
	return s.store.Collection(models.SettingsCollection)
}

// List returns the user's category list, or the default list when none is
// stored or the stored value is corrupted.
func (s *categoryService) List(ctx context.Context, userID string) ([]string, error) {
	doc, err := s.settings().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultCategories, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	categories, ok := models.CategoriesFromSettings(doc.Data)
	if !ok {
		logger.Get().Warnw("stored category list is missing or corrupted, returning defaults",
			"user_id", userID,
		)
		return models.DefaultCategories, nil
	}
	return categories, nil
}

// Add appends a category to the user's list. A user with no stored list
// starts from the defaults.
func (s *categoryService) Add(ctx context.Context, userID, name string) ([]string, error) {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, c := range existing {
		if c == name {
			return nil, apperrors.ErrCategoryExists
		}
	}

	updated := append(append([]string{}, existing...), name)
	if err := s.settings().Set(ctx, userID, map[string]any{
		models.CategoriesField: updated,
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return updated, nil
}

// Remove deletes a category from the user's stored list. Removing from a
// user with no stored list is a not-found, even when the name appears in the
// default list.
func (s *categoryService) Remove(ctx context.Context, userID, name string) ([]string, error) {
	doc, err := s.settings().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	existing, ok := models.CategoriesFromSettings(doc.Data)
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}

	updated := make([]string, 0, len(existing))
	found := false
	for _, c := range existing {
		if c == name {
			found = true
			continue
		}
		updated = append(updated, c)
	}
	if !found {
		return nil, apperrors.ErrCategoryNotFound
	}

	if err := s.settings().Set(ctx, userID, map[string]any{
		models.CategoriesField: updated,
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return updated, nil
}
