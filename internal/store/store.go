package store

import (
	"context"
	"errors"

	"github.com/nhle/loan-checklist/internal/model"
)

// ErrNotFound is wrapped by every lookup or mutation that targets a
// missing row.
var ErrNotFound = errors.New("not found")

// ChecklistFilter narrows checklist item queries.
type ChecklistFilter struct {
	LoanID        string
	ChecklistType *model.ChecklistType
	Status        *model.Status
}

// DocumentFilter narrows loan document queries. LoanID is required.
type DocumentFilter struct {
	LoanID          string
	ChecklistItemID *string
	FileURL         *string
}

// ChecklistStore persists checklist items.
type ChecklistStore interface {
	CreateChecklistItem(ctx context.Context, item *model.ChecklistItem) error
	UpdateChecklistItem(ctx context.Context, item *model.ChecklistItem) error
	GetChecklistItemByID(ctx context.Context, id string) (*model.ChecklistItem, error)
	GetChecklistItems(ctx context.Context, filter ChecklistFilter) ([]model.ChecklistItem, error)
}

// DocumentStore persists mirrored loan documents.
type DocumentStore interface {
	CreateLoanDocument(ctx context.Context, doc *model.LoanDocument) error
	UpdateLoanDocumentStatus(ctx context.Context, id string, status model.Status) error
	DeleteLoanDocument(ctx context.Context, id string) error
	GetLoanDocuments(ctx context.Context, filter DocumentFilter) ([]model.LoanDocument, error)
}

// DirectoryStore persists loans, borrowers, and staff users.
type DirectoryStore interface {
	UpsertLoan(ctx context.Context, loan model.Loan) error
	GetLoanByID(ctx context.Context, id string) (*model.Loan, error)
	CreateBorrower(ctx context.Context, b *model.Borrower) error
	GetBorrowersForLoan(ctx context.Context, loanID string) ([]model.Borrower, error)
	UpsertUser(ctx context.Context, u model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
}

// NotificationStore persists the per-user notification inbox.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n model.Notification) error
	GetUnreadNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// Store defines the full persistence interface used by the service.
type Store interface {
	ChecklistStore
	DocumentStore
	DirectoryStore
	NotificationStore
	Close() error
}
