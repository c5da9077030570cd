// Package mirror keeps the document-centric LoanDocument rows in step
// with the checklist items they were uploaded through.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

var categoryByChecklistCategory = map[string]model.DocumentCategory{
	"Borrower Document":     model.DocumentCategoryBorrower,
	"Property Document":     model.DocumentCategoryProperty,
	"Closing Document":      model.DocumentCategoryClosing,
	"Post-Closing Document": model.DocumentCategoryPostClosing,
}

// CategoryFor maps a checklist item category to the document category
// used for its uploads. Unrecognized categories map to application.
func CategoryFor(checklistCategory string) model.DocumentCategory {
	if c, ok := categoryByChecklistCategory[checklistCategory]; ok {
		return c
	}
	return model.DocumentCategoryApplication
}

// Mirror maintains LoanDocument rows derived from checklist items.
type Mirror struct {
	docs   store.DocumentStore
	logger *slog.Logger
}

// New creates a Mirror over the given document store.
func New(docs store.DocumentStore, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{docs: docs, logger: logger}
}

// SyncStatus sets the status of every document linked to the checklist
// item. It attempts every row and returns the first failure.
func (m *Mirror) SyncStatus(ctx context.Context, checklistItemID, loanID string, status model.Status) error {
	docs, err := m.Linked(ctx, checklistItemID, loanID)
	if err != nil {
		return err
	}

	var firstErr error
	for _, d := range docs {
		if d.Status == status {
			continue
		}
		if err := m.docs.UpdateLoanDocumentStatus(ctx, d.ID, status); err != nil {
			m.logger.Error("mirror status update failed",
				"loan_id", loanID, "item_id", checklistItemID, "document_id", d.ID, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("syncing document %s: %w", d.ID, err)
			}
		}
	}
	return firstErr
}

// Linked returns the documents uploaded through a checklist item.
func (m *Mirror) Linked(ctx context.Context, checklistItemID, loanID string) ([]model.LoanDocument, error) {
	docs, err := m.docs.GetLoanDocuments(ctx, store.DocumentFilter{
		LoanID:          loanID,
		ChecklistItemID: &checklistItemID,
	})
	if err != nil {
		return nil, fmt.Errorf("loading documents for checklist item %s: %w", checklistItemID, err)
	}
	return docs, nil
}

// RecordUpload creates the document row for a file just attached to a
// checklist item. The row starts in the item's current status. An empty
// category is derived from the item's category.
func (m *Mirror) RecordUpload(
	ctx context.Context,
	item *model.ChecklistItem,
	file model.FileRef,
	category model.DocumentCategory,
) (*model.LoanDocument, error) {
	if category == "" {
		category = CategoryFor(item.Category)
	}
	itemID := item.ID
	doc := &model.LoanDocument{
		LoanID:          item.LoanID,
		DocumentName:    file.FileName,
		FileURL:         file.FileURL,
		Category:        category,
		Status:          item.Status,
		UploadedBy:      file.UploadedBy,
		UploadedDate:    file.UploadedDate,
		ChecklistItemID: &itemID,
	}
	if doc.UploadedDate.IsZero() {
		doc.UploadedDate = time.Now()
	}

	if err := m.docs.CreateLoanDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("mirroring %q for checklist item %s: %w", file.FileName, item.ID, err)
	}
	return doc, nil
}

// RemoveFile deletes every document of the checklist item that points at
// fileURL and reports how many were removed.
func (m *Mirror) RemoveFile(ctx context.Context, item *model.ChecklistItem, fileURL string) (int, error) {
	itemID := item.ID
	docs, err := m.docs.GetLoanDocuments(ctx, store.DocumentFilter{
		LoanID:          item.LoanID,
		ChecklistItemID: &itemID,
		FileURL:         &fileURL,
	})
	if err != nil {
		return 0, fmt.Errorf("loading documents for %s: %w", fileURL, err)
	}

	removed := 0
	for _, d := range docs {
		if err := m.docs.DeleteLoanDocument(ctx, d.ID); err != nil {
			return removed, fmt.Errorf("deleting document %s: %w", d.ID, err)
		}
		removed++
	}
	return removed, nil
}
