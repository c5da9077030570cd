package model

import (
	"strings"
	"time"
)

// ChecklistType selects which status domain a checklist item lives in.
type ChecklistType string

const (
	ChecklistTypeActionItem ChecklistType = "action_item"
	ChecklistTypeDocument   ChecklistType = "document"
)

// Status is a checklist item status. Its valid values depend on the
// item's ChecklistType.
type Status string

// Action item statuses.
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusFlagged    Status = "flagged"
	StatusCompleted  Status = "completed"
)

// Document statuses, in their nominal review order.
const (
	StatusPending                      Status = "pending"
	StatusSubmitted                    Status = "submitted"
	StatusUnderReview                  Status = "under_review"
	StatusFirstReviewDone              Status = "first_review_done"
	StatusSecondReviewDone             Status = "second_review_done"
	StatusApproved                     Status = "approved"
	StatusApprovedWithCondition        Status = "approved_with_condition"
	StatusRejected                     Status = "rejected"
	StatusLetterOfExplanationRequested Status = "letter_of_explanation_requested"
)

var actionItemStatuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusOnHold,
	StatusFlagged,
	StatusCompleted,
}

var documentStatuses = []Status{
	StatusPending,
	StatusSubmitted,
	StatusUnderReview,
	StatusFirstReviewDone,
	StatusSecondReviewDone,
	StatusApproved,
	StatusApprovedWithCondition,
	StatusRejected,
	StatusLetterOfExplanationRequested,
}

var statusLabels = map[Status]string{
	StatusNotStarted:                   "Not Started",
	StatusInProgress:                   "In Progress",
	StatusOnHold:                       "On Hold",
	StatusFlagged:                      "Flagged",
	StatusCompleted:                    "Completed",
	StatusPending:                      "Pending",
	StatusSubmitted:                    "Submitted",
	StatusUnderReview:                  "Under Review",
	StatusFirstReviewDone:              "First Review Done",
	StatusSecondReviewDone:             "Second Review Done",
	StatusApproved:                     "Approved",
	StatusApprovedWithCondition:        "Approved with Condition",
	StatusRejected:                     "Rejected",
	StatusLetterOfExplanationRequested: "Letter of Explanation Requested",
}

// Label returns the human-readable form of the status. Unknown values are
// rendered by title-casing their underscore-separated words.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	words := strings.Fields(strings.ReplaceAll(string(s), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Valid reports whether t is a known checklist type.
func (t ChecklistType) Valid() bool {
	return t == ChecklistTypeActionItem || t == ChecklistTypeDocument
}

// Statuses returns the status domain for the checklist type in display order.
func (t ChecklistType) Statuses() []Status {
	switch t {
	case ChecklistTypeActionItem:
		return append([]Status(nil), actionItemStatuses...)
	case ChecklistTypeDocument:
		return append([]Status(nil), documentStatuses...)
	}
	return nil
}

// InitialStatus is the status a freshly materialized item starts in.
func (t ChecklistType) InitialStatus() Status {
	if t == ChecklistTypeDocument {
		return StatusPending
	}
	return StatusNotStarted
}

// Allows reports whether s belongs to the status domain of t.
func (t ChecklistType) Allows(s Status) bool {
	for _, candidate := range t.Statuses() {
		if candidate == s {
			return true
		}
	}
	return false
}

// Activity actions recorded in a checklist item's history.
const (
	ActionStatusChanged         = "status_changed"
	ActionFirstReviewChecked    = "first_review_checked"
	ActionFirstReviewUnchecked  = "first_review_unchecked"
	ActionSecondReviewChecked   = "second_review_checked"
	ActionSecondReviewUnchecked = "second_review_unchecked"
	ActionCommentAdded          = "comment_added"
	ActionCommentDeleted        = "comment_deleted"
	ActionFileUploaded          = "file_uploaded"
	ActionFileRemoved           = "file_removed"
	ActionLOERequested          = "loe_requested"
	ActionAssigned              = "assigned"
	ActionUnassigned            = "unassigned"
	ActionDueDateChanged        = "due_date_changed"
)

// Comment is a note left on a checklist item.
type Comment struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Mentions   []string  `json:"mentions,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileRef is a file attached to a checklist item.
type FileRef struct {
	FileURL      string    `json:"file_url"`
	FileName     string    `json:"file_name"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedDate time.Time `json:"uploaded_date"`
}

// ActivityEntry is one line of a checklist item's audit trail.
type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// DocumentReview holds the two-stage underwriting review of a document
// item. The second review may only be recorded once the first is.
type DocumentReview struct {
	FirstReviewCompletedBy    *string    `json:"first_review_completed_by,omitempty"`
	FirstReviewCompletedDate  *time.Time `json:"first_review_completed_date,omitempty"`
	SecondReviewCompletedBy   *string    `json:"second_review_completed_by,omitempty"`
	SecondReviewCompletedDate *time.Time `json:"second_review_completed_date,omitempty"`
}

// FirstDone reports whether the first review is recorded.
func (r *DocumentReview) FirstDone() bool {
	return r != nil && r.FirstReviewCompletedBy != nil
}

// SecondDone reports whether the second review is recorded.
func (r *DocumentReview) SecondDone() bool {
	return r != nil && r.SecondReviewCompletedBy != nil
}

// ChecklistItem is one required action or document for a loan.
//
// Review is only populated for document items; it is nil for action items.
type ChecklistItem struct {
	ID              string          `json:"id" db:"id"`
	LoanID          string          `json:"loan_id" db:"loan_id"`
	ChecklistType   ChecklistType   `json:"checklist_type" db:"checklist_type"`
	Category        string          `json:"category" db:"category"`
	ItemName        string          `json:"item_name" db:"item_name"`
	Description     string          `json:"description" db:"description"`
	Provider        string          `json:"provider" db:"provider"`
	Status          Status          `json:"status" db:"status"`
	DueDate         *time.Time      `json:"due_date,omitempty" db:"due_date"`
	AssignedTo      []string        `json:"assigned_to" db:"-"`
	Notes           []Comment       `json:"notes" db:"-"`
	UploadedFiles   []FileRef       `json:"uploaded_files" db:"-"`
	ActivityHistory []ActivityEntry `json:"activity_history" db:"-"`
	Review          *DocumentReview `json:"review,omitempty" db:"-"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// IsDocument reports whether the item is a document checklist item.
func (i *ChecklistItem) IsDocument() bool {
	return i.ChecklistType == ChecklistTypeDocument
}

// Key is the normalized identity of the item within its loan.
func (i *ChecklistItem) Key() string {
	return NormalizeKey(i.ChecklistType, i.ItemName)
}

// NormalizeKey builds the case and whitespace insensitive identity of a
// checklist entry from its type and item name.
func NormalizeKey(t ChecklistType, itemName string) string {
	return strings.ToLower(strings.TrimSpace(string(t))) + "|" +
		strings.ToLower(strings.TrimSpace(itemName))
}
