package checklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/loan-checklist/internal/model"
)

var (
	// ErrEmptyComment is returned when a comment has no text.
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrNotDocumentItem is returned by review and LOE operations on
	// action items.
	ErrNotDocumentItem = errors.New("checklist item is not a document")

	// ErrFirstReviewRequired is returned when the second review is
	// recorded before the first.
	ErrFirstReviewRequired = errors.New("first review must be completed before second review")

	// ErrSecondReviewRecorded is returned when the first review is
	// unchecked while the second review is still recorded.
	ErrSecondReviewRecorded = errors.New("second review must be unchecked before first review")

	ErrCommentNotFound     = errors.New("comment not found")
	ErrFileIndexOutOfRange = errors.New("file index out of range")
	ErrNoFileStorage       = errors.New("no file storage configured")
)

// NoBorrowersError is returned when a letter of explanation is requested
// for a loan that has no borrowers.
type NoBorrowersError struct {
	LoanID string
}

func (e *NoBorrowersError) Error() string {
	return fmt.Sprintf("loan %s has no borrowers", e.LoanID)
}

// InvalidStatusError is returned when a status does not belong to the
// item's checklist type.
type InvalidStatusError struct {
	Type   model.ChecklistType
	Status model.Status
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status %q is not valid for %s items", e.Status, e.Type)
}

// FileFailure records one file of a batch that could not be uploaded.
type FileFailure struct {
	FileName string `json:"file_name"`
	Err      error  `json:"-"`
}

// UploadError reports the files of a batch that failed. Files not listed
// were stored.
type UploadError struct {
	Failures []FileFailure
}

func (e *UploadError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.FileName
	}
	return fmt.Sprintf("%d file(s) failed to upload: %s", len(e.Failures), strings.Join(names, ", "))
}

// Unwrap exposes the underlying upload errors to errors.Is and errors.As.
func (e *UploadError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// EntryFailure records one template entry that could not be materialized.
type EntryFailure struct {
	Key string
	Err error
}

// MaterializeError reports the template entries that failed during a
// materialization run. They are retried on the next run.
type MaterializeError struct {
	LoanID   string
	Failures []EntryFailure
}

func (e *MaterializeError) Error() string {
	keys := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		keys[i] = f.Key
	}
	return fmt.Sprintf("materializing loan %s: %d item(s) failed: %s",
		e.LoanID, len(e.Failures), strings.Join(keys, ", "))
}

func (e *MaterializeError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
