package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/loan-checklist/internal/model"
)

const checklistColumns = `
	id, loan_id, checklist_type, category, item_name, description, provider,
	status, due_date, assigned_to, notes, uploaded_files, activity_history,
	first_review_completed_by, first_review_completed_date,
	second_review_completed_by, second_review_completed_date,
	created_at, updated_at`

// CreateChecklistItem inserts a new checklist item. Generates a UUID if
// ID is empty and fills the item's timestamps.
func (s *SQLiteStore) CreateChecklistItem(
	ctx context.Context,
	item *model.ChecklistItem,
) error {
	if strings.TrimSpace(item.ItemName) == "" {
		return fmt.Errorf("checklist item name must not be empty")
	}
	if !item.ChecklistType.Valid() {
		return fmt.Errorf("unknown checklist type %q", item.ChecklistType)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = item.ChecklistType.InitialStatus()
	}
	if item.IsDocument() && item.Review == nil {
		item.Review = &model.DocumentReview{}
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	cols, err := checklistJSONColumns(item)
	if err != nil {
		return fmt.Errorf("encoding checklist item %s: %w", item.ID, err)
	}
	review := reviewColumns(item.Review)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checklist_items (`+checklistColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.LoanID, string(item.ChecklistType), item.Category,
		item.ItemName, item.Description, item.Provider,
		string(item.Status), item.DueDate,
		cols.assignedTo, cols.notes, cols.files, cols.activity,
		review.firstBy, review.firstDate, review.secondBy, review.secondDate,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating checklist item %q: %w", item.ItemName, err)
	}
	return nil
}

// UpdateChecklistItem writes every mutable field of an existing item.
// Concurrent writers are last-write-wins.
func (s *SQLiteStore) UpdateChecklistItem(
	ctx context.Context,
	item *model.ChecklistItem,
) error {
	item.UpdatedAt = time.Now().UTC()

	cols, err := checklistJSONColumns(item)
	if err != nil {
		return fmt.Errorf("encoding checklist item %s: %w", item.ID, err)
	}
	review := reviewColumns(item.Review)

	result, err := s.db.ExecContext(ctx, `
		UPDATE checklist_items SET
			category = ?, item_name = ?, description = ?, provider = ?,
			status = ?, due_date = ?,
			assigned_to = ?, notes = ?, uploaded_files = ?, activity_history = ?,
			first_review_completed_by = ?, first_review_completed_date = ?,
			second_review_completed_by = ?, second_review_completed_date = ?,
			updated_at = ?
		WHERE id = ?`,
		item.Category, item.ItemName, item.Description, item.Provider,
		string(item.Status), item.DueDate,
		cols.assignedTo, cols.notes, cols.files, cols.activity,
		review.firstBy, review.firstDate, review.secondBy, review.secondDate,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating checklist item %s: %w", item.ID, err)
	}
	return requireAffected(result, "checklist item", item.ID)
}

// GetChecklistItemByID retrieves a single checklist item by ID.
func (s *SQLiteStore) GetChecklistItemByID(
	ctx context.Context,
	id string,
) (*model.ChecklistItem, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+checklistColumns+" FROM checklist_items WHERE id = ?", id)

	item, err := scanChecklistItem(row)
	if err != nil {
		return nil, notFound(err, "checklist item", id)
	}
	return &item, nil
}

// GetChecklistItems returns a loan's checklist items in creation order.
func (s *SQLiteStore) GetChecklistItems(
	ctx context.Context,
	filter ChecklistFilter,
) ([]model.ChecklistItem, error) {
	conditions := []string{"loan_id = ?"}
	args := []interface{}{filter.LoanID}

	if filter.ChecklistType != nil {
		conditions = append(conditions, "checklist_type = ?")
		args = append(args, string(*filter.ChecklistType))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}

	query := "SELECT " + checklistColumns + " FROM checklist_items WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY created_at, rowid"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items for loan %s: %w", filter.LoanID, err)
	}
	defer rows.Close()

	var items []model.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type encodedChecklistColumns struct {
	assignedTo, notes, files, activity string
}

func checklistJSONColumns(item *model.ChecklistItem) (encodedChecklistColumns, error) {
	var (
		out encodedChecklistColumns
		err error
	)
	if out.assignedTo, err = encodeJSON(item.AssignedTo); err != nil {
		return out, fmt.Errorf("assigned_to: %w", err)
	}
	if out.notes, err = encodeJSON(item.Notes); err != nil {
		return out, fmt.Errorf("notes: %w", err)
	}
	if out.files, err = encodeJSON(item.UploadedFiles); err != nil {
		return out, fmt.Errorf("uploaded_files: %w", err)
	}
	if out.activity, err = encodeJSON(item.ActivityHistory); err != nil {
		return out, fmt.Errorf("activity_history: %w", err)
	}
	return out, nil
}

type reviewRow struct {
	firstBy, secondBy     *string
	firstDate, secondDate *time.Time
}

func reviewColumns(r *model.DocumentReview) reviewRow {
	if r == nil {
		return reviewRow{}
	}
	return reviewRow{
		firstBy:    r.FirstReviewCompletedBy,
		firstDate:  r.FirstReviewCompletedDate,
		secondBy:   r.SecondReviewCompletedBy,
		secondDate: r.SecondReviewCompletedDate,
	}
}

// scanChecklistItem scans a checklist_items row from sqlx.Rows or sqlx.Row.
func scanChecklistItem(rows interface {
	Scan(dest ...interface{}) error
}) (model.ChecklistItem, error) {
	var (
		item                           model.ChecklistItem
		checklistType, status          string
		assignedTo, notes, files, hist string
		review                         reviewRow
	)

	err := rows.Scan(
		&item.ID, &item.LoanID, &checklistType, &item.Category, &item.ItemName,
		&item.Description, &item.Provider,
		&status, &item.DueDate, &assignedTo, &notes, &files, &hist,
		&review.firstBy, &review.firstDate, &review.secondBy, &review.secondDate,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return model.ChecklistItem{}, fmt.Errorf("scanning checklist item row: %w", err)
	}

	item.ChecklistType = model.ChecklistType(checklistType)
	item.Status = model.Status(status)

	if err := decodeJSON(assignedTo, &item.AssignedTo); err != nil {
		return model.ChecklistItem{}, fmt.Errorf("unmarshaling assigned_to: %w", err)
	}
	if err := decodeJSON(notes, &item.Notes); err != nil {
		return model.ChecklistItem{}, fmt.Errorf("unmarshaling notes: %w", err)
	}
	if err := decodeJSON(files, &item.UploadedFiles); err != nil {
		return model.ChecklistItem{}, fmt.Errorf("unmarshaling uploaded_files: %w", err)
	}
	if err := decodeJSON(hist, &item.ActivityHistory); err != nil {
		return model.ChecklistItem{}, fmt.Errorf("unmarshaling activity_history: %w", err)
	}

	if item.IsDocument() {
		item.Review = &model.DocumentReview{
			FirstReviewCompletedBy:    review.firstBy,
			FirstReviewCompletedDate:  review.firstDate,
			SecondReviewCompletedBy:   review.secondBy,
			SecondReviewCompletedDate: review.secondDate,
		}
	}

	return item, nil
}
