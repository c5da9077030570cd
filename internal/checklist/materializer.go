package checklist

import (
	"context"
	"fmt"

	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

// Materialize loads the loan and ensures every template applicable to its
// product has exactly one checklist item. See MaterializeLoan.
func (e *Engine) Materialize(ctx context.Context, loanID string) ([]model.ChecklistItem, error) {
	loan, err := e.store.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loading loan %s: %w", loanID, err)
	}
	return e.MaterializeLoan(ctx, loan)
}

// MaterializeLoan creates the checklist items the loan is missing, in
// template order, and returns the ones it created. Existing items are
// never modified. A loan without a product is left untouched.
//
// Each creation is independent: a failed entry is logged, the remaining
// entries are still created, and the failures are returned together as a
// *MaterializeError. Failed entries are retried by the next run.
func (e *Engine) MaterializeLoan(ctx context.Context, loan *model.Loan) ([]model.ChecklistItem, error) {
	if loan.LoanProduct == nil {
		e.logger.Debug("loan has no product, skipping materialization", "loan_id", loan.ID)
		return nil, nil
	}

	existing, err := e.store.GetChecklistItems(ctx, store.ChecklistFilter{LoanID: loan.ID})
	if err != nil {
		return nil, fmt.Errorf("loading checklist for loan %s: %w", loan.ID, err)
	}
	keys := make(map[string]bool, len(existing))
	for i := range existing {
		keys[existing[i].Key()] = true
	}

	var (
		created  []model.ChecklistItem
		failures []EntryFailure
	)
	for _, entry := range e.catalog.ApplicableTo(*loan.LoanProduct) {
		key := entry.Key()
		if keys[key] {
			continue
		}

		item := model.ChecklistItem{
			LoanID:        loan.ID,
			ChecklistType: entry.ChecklistType,
			Category:      entry.Category,
			ItemName:      entry.ItemName,
			Description:   entry.Description,
			Provider:      entry.Provider,
			Status:        entry.ChecklistType.InitialStatus(),
		}
		if err := e.store.CreateChecklistItem(ctx, &item); err != nil {
			e.logger.Warn("creating checklist item failed",
				"loan_id", loan.ID, "item_name", entry.ItemName, "error", err)
			failures = append(failures, EntryFailure{Key: key, Err: err})
			continue
		}
		keys[key] = true
		created = append(created, item)
	}

	if len(created) > 0 {
		e.logger.Info("materialized checklist", "loan_id", loan.ID, "created", len(created))
		e.publish(EventMaterialized, loan.ID, "")
	}
	if len(failures) > 0 {
		return created, &MaterializeError{LoanID: loan.ID, Failures: failures}
	}
	return created, nil
}
