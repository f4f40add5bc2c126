package services

import (
	"context"
	"errors"

	apperrors "finbook/internal/errors"
	"finbook/internal/store"
)

// getOwnedDoc fetches a document and verifies the requester owns it.
// An absent document and a document owned by someone else both return the
// given not-found sentinel, so the two cases are indistinguishable.
func getOwnedDoc(ctx context.Context, coll store.Collection, userID, id string, notFound *apperrors.AppError) (*store.Doc, error) {
	doc, err := coll.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if owner, _ := doc.Data["userId"].(string); owner != userID {
		return nil, notFound
	}
	return doc, nil
}

// queryOwned lists every document belonging to the owner.
func queryOwned(ctx context.Context, coll store.Collection, userID string) ([]store.Doc, error) {
	docs, err := coll.Query(ctx, store.Query{
		Filters: []store.Filter{
			{Field: "userId", Op: store.OpEqual, Value: userID},
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return docs, nil
}
