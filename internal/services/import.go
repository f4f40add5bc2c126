package services

import (
	"context"
	"sync"

	apperrors "finbook/internal/errors"
	"finbook/internal/logger"
	"finbook/internal/models"
	"finbook/internal/store"
)

// Import de-duplicates and persists a batch of externally sourced
// transactions for one owner. Records without a ref_id have no stable
// de-duplication key and count as errors. Records whose ref_id already
// exists for the owner, or appears earlier in the same batch, count as
// duplicates. Everything else is staged and committed in a single atomic
// batch write; if that commit fails, every staged record is reclassified as
// an error and nothing is reported created.
//
// The returned report's three counters always sum to len(records).
func (s *transactionService) Import(ctx context.Context, userID string, records []ImportRecord) (*ImportReport, error) {
	// The existing-key check is read-then-write, so two concurrent imports
	// for the same owner could both miss a fresh ref_id. Serializing per
	// owner closes the race within this process; across processes it
	// remains a best-effort check.
	lock := s.ownerLock(userID)
	lock.Lock()
	defer lock.Unlock()

	log := logger.Get()
	log.Infow("importing transactions", "user_id", userID, "count", len(records))

	report := &ImportReport{}

	refIDs := make([]string, 0, len(records))
	for _, r := range records {
		if r.RefID != "" {
			refIDs = append(refIDs, r.RefID)
		}
	}

	// A batch with zero keyed records is entirely erroneous, not partially
	// processed.
	if len(refIDs) == 0 {
		log.Infow("no importable transactions in batch", "user_id", userID)
		report.Errors = len(records)
		return report, nil
	}

	seen, err := s.existingRefIDs(ctx, userID, refIDs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	log.Infow("checked existing ref_ids", "user_id", userID, "existing", len(seen))

	var staged []map[string]any
	for _, r := range records {
		if r.RefID == "" {
			log.Warnw("skipping imported transaction with no ref_id", "user_id", userID)
			report.Errors++
			continue
		}
		if seen[r.RefID] {
			continue
		}

		staged = append(staged, s.importedDoc(userID, r))
		report.Created++
		// Marking the ref_id seen here also catches duplicates within the
		// batch itself.
		seen[r.RefID] = true
	}

	report.Duplicates = len(records) - report.Created - report.Errors

	if report.Created > 0 {
		if err := s.transactions().CreateAll(ctx, staged); err != nil {
			// Nothing was durably persisted: every staged create is an
			// error, and the already-chosen duplicates are unaffected.
			log.Errorw("import batch commit failed",
				"user_id", userID,
				"staged", report.Created,
				"error", err.Error(),
			)
			report.Errors += report.Created
			report.Created = 0
		} else {
			log.Infow("committed import batch", "user_id", userID, "created", report.Created)
		}
	}

	log.Infow("import report",
		"user_id", userID,
		"created", report.Created,
		"duplicates", report.Duplicates,
		"errors", report.Errors,
	)
	return report, nil
}

// existingRefIDs returns the set of the given ref_ids already stored for the
// owner. The store caps "in" filters at MaxInValues members, so larger sets
// are checked in chunks.
func (s *transactionService) existingRefIDs(ctx context.Context, userID string, refIDs []string) (map[string]bool, error) {
	coll := s.transactions()
	seen := make(map[string]bool)

	for start := 0; start < len(refIDs); start += store.MaxInValues {
		end := start + store.MaxInValues
		if end > len(refIDs) {
			end = len(refIDs)
		}

		docs, err := coll.Query(ctx, store.Query{
			Filters: []store.Filter{
				{Field: "userId", Op: store.OpEqual, Value: userID},
				{Field: "ref_id", Op: store.OpIn, Value: refIDs[start:end]},
			},
		})
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if refID, _ := doc.Data["ref_id"].(string); refID != "" {
				seen[refID] = true
			}
		}
	}
	return seen, nil
}

// importedDoc builds the stored document for one staged import record,
// applying the import-side defaults.
func (s *transactionService) importedDoc(userID string, r ImportRecord) map[string]any {
	description := r.Description
	if description == "" {
		description = r.Vendor
	}
	if description == "" {
		description = models.ImportedDescription
	}

	category := r.Category
	if category == "" {
		category = models.DefaultCategory
	}

	source := r.Source
	if source == "" {
		source = models.SourceImporter
	}

	doc := map[string]any{
		"userId":      userID,
		"amount":      r.Amount,
		"type":        r.Type,
		"date":        r.Date,
		"description": description,
		"category":    category,
		"ref_id":      r.RefID,
		"source":      source,
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	}
	if r.Vendor != "" {
		doc["vendor"] = r.Vendor
	}
	if r.Bank != "" {
		doc["bank"] = r.Bank
	}
	if r.Currency != "" {
		doc["currency"] = r.Currency
	}
	if r.Merchant != "" {
		doc["merchant"] = r.Merchant
	}
	return doc
}

// ownerLock returns the import mutex for one owner, creating it on first use.
func (s *transactionService) ownerLock(userID string) *sync.Mutex {
	s.importMu.Lock()
	defer s.importMu.Unlock()

	lock, ok := s.importLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.importLocks[userID] = lock
	}
	return lock
}
