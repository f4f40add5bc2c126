package services

import (
	"context"
	"errors"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/store"
)

// goalService handles goal-related business logic.
type goalService struct {
	store store.Store
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(st store.Store) GoalServicer {
	return &goalService{store: st}
}

func (s *goalService) goals() store.Collection {
	return s.store.Collection(models.GoalsCollection)
}

// Create creates a goal. Current amount starts at zero; the target date
// string is parsed into a store timestamp.
func (s *goalService) Create(ctx context.Context, userID string, in GoalInput) (*models.Goal, error) {
	targetDate, err := models.ParseTime(in.TargetDate)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	data := map[string]any{
		"userId":        userID,
		"name":          in.Name,
		"targetAmount":  in.TargetAmount,
		"currentAmount": float64(0),
		"targetDate":    targetDate,
		"createdAt":     store.ServerTimestamp,
		"updatedAt":     store.ServerTimestamp,
	}
	if in.Category != "" {
		data["category"] = in.Category
	}

	coll := s.goals()
	id, err := coll.Create(ctx, data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal := models.GoalFromDoc(*doc)
	return &goal, nil
}

// List returns all goals belonging to the user.
func (s *goalService) List(ctx context.Context, userID string) ([]models.Goal, error) {
	docs, err := queryOwned(ctx, s.goals(), userID)
	if err != nil {
		return nil, err
	}
	goals := make([]models.Goal, 0, len(docs))
	for _, doc := range docs {
		goals = append(goals, models.GoalFromDoc(doc))
	}
	return goals, nil
}

// GetByID returns a goal if it belongs to the user.
func (s *goalService) GetByID(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	doc, err := getOwnedDoc(ctx, s.goals(), userID, goalID, apperrors.ErrGoalNotFound)
	if err != nil {
		return nil, err
	}
	goal := models.GoalFromDoc(*doc)
	return &goal, nil
}

// Update applies a partial update to an owned goal. A target date string is
// re-parsed into a store timestamp.
func (s *goalService) Update(ctx context.Context, userID, goalID string, fields GoalUpdateFields) (*models.Goal, error) {
	coll := s.goals()
	if _, err := getOwnedDoc(ctx, coll, userID, goalID, apperrors.ErrGoalNotFound); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"updatedAt": store.ServerTimestamp,
	}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.TargetAmount != nil {
		updates["targetAmount"] = *fields.TargetAmount
	}
	if fields.CurrentAmount != nil {
		updates["currentAmount"] = *fields.CurrentAmount
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.TargetDate != nil {
		parsed, err := models.ParseTime(*fields.TargetDate)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		updates["targetDate"] = parsed
	}

	if err := coll.Update(ctx, goalID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc, err := coll.Get(ctx, goalID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal := models.GoalFromDoc(*doc)
	return &goal, nil
}

// Delete removes an owned goal.
func (s *goalService) Delete(ctx context.Context, userID, goalID string) error {
	coll := s.goals()
	if _, err := getOwnedDoc(ctx, coll, userID, goalID, apperrors.ErrGoalNotFound); err != nil {
		return err
	}
	if err := coll.Delete(ctx, goalID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
