package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/loan-checklist/internal/model"
)

const documentColumns = `
	id, loan_id, document_name, file_url, category, status,
	uploaded_by, uploaded_date, checklist_item_id, created_at, updated_at`

// CreateLoanDocument inserts a loan document row. Generates a UUID if ID
// is empty.
func (s *SQLiteStore) CreateLoanDocument(
	ctx context.Context,
	doc *model.LoanDocument,
) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Category == "" {
		doc.Category = model.DocumentCategoryApplication
	}
	now := time.Now().UTC()
	if doc.UploadedDate.IsZero() {
		doc.UploadedDate = now
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loan_documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.LoanID, doc.DocumentName, doc.FileURL,
		string(doc.Category), string(doc.Status),
		doc.UploadedBy, doc.UploadedDate.UTC(), doc.ChecklistItemID,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating loan document %q: %w", doc.DocumentName, err)
	}
	return nil
}

// UpdateLoanDocumentStatus sets the status of one loan document.
func (s *SQLiteStore) UpdateLoanDocumentStatus(
	ctx context.Context,
	id string,
	status model.Status,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE loan_documents SET status = ?, updated_at = ? WHERE id = ?",
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating loan document %s status: %w", id, err)
	}
	return requireAffected(result, "loan document", id)
}

// DeleteLoanDocument removes a loan document by ID.
func (s *SQLiteStore) DeleteLoanDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM loan_documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting loan document %s: %w", id, err)
	}
	return requireAffected(result, "loan document", id)
}

// GetLoanDocuments returns a loan's documents matching the filter,
// oldest upload first.
func (s *SQLiteStore) GetLoanDocuments(
	ctx context.Context,
	filter DocumentFilter,
) ([]model.LoanDocument, error) {
	conditions := []string{"loan_id = ?"}
	args := []interface{}{filter.LoanID}

	if filter.ChecklistItemID != nil {
		conditions = append(conditions, "checklist_item_id = ?")
		args = append(args, *filter.ChecklistItemID)
	}
	if filter.FileURL != nil {
		conditions = append(conditions, "file_url = ?")
		args = append(args, *filter.FileURL)
	}

	query := "SELECT " + documentColumns + " FROM loan_documents WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY uploaded_date, rowid"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying loan documents for loan %s: %w", filter.LoanID, err)
	}
	defer rows.Close()

	var docs []model.LoanDocument
	for rows.Next() {
		doc, err := scanLoanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// scanLoanDocument scans a loan_documents row.
func scanLoanDocument(rows interface {
	Scan(dest ...interface{}) error
}) (model.LoanDocument, error) {
	var (
		doc              model.LoanDocument
		category, status string
	)

	err := rows.Scan(
		&doc.ID, &doc.LoanID, &doc.DocumentName, &doc.FileURL,
		&category, &status, &doc.UploadedBy, &doc.UploadedDate,
		&doc.ChecklistItemID, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return model.LoanDocument{}, fmt.Errorf("scanning loan document row: %w", err)
	}

	doc.Category = model.DocumentCategory(category)
	doc.Status = model.Status(status)
	return doc, nil
}
