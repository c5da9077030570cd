package model

import "time"

// DocumentCategory classifies a loan document for document-centric views.
type DocumentCategory string

const (
	DocumentCategoryApplication DocumentCategory = "application"
	DocumentCategoryBorrower    DocumentCategory = "borrower_document"
	DocumentCategoryProperty    DocumentCategory = "property_document"
	DocumentCategoryClosing     DocumentCategory = "closing_document"
	DocumentCategoryPostClosing DocumentCategory = "post_closing_document"
)

// LoanDocument is the per-file projection of a checklist item upload.
// Its Status mirrors the originating checklist item when ChecklistItemID
// is set.
type LoanDocument struct {
	ID              string           `json:"id" db:"id"`
	LoanID          string           `json:"loan_id" db:"loan_id"`
	DocumentName    string           `json:"document_name" db:"document_name"`
	FileURL         string           `json:"file_url" db:"file_url"`
	Category        DocumentCategory `json:"category" db:"category"`
	Status          Status           `json:"status" db:"status"`
	UploadedBy      string           `json:"uploaded_by" db:"uploaded_by"`
	UploadedDate    time.Time        `json:"uploaded_date" db:"uploaded_date"`
	ChecklistItemID *string          `json:"checklist_item_id,omitempty" db:"checklist_item_id"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}
