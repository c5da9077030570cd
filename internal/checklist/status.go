package checklist

import (
	"context"
	"fmt"

	"github.com/nhle/loan-checklist/internal/model"
)

// ChangeStatus moves the item to status, records the change and brings
// linked documents to the same status. Setting the current status again
// is a no-op. The caller is responsible for authorizing the actor.
func (e *Engine) ChangeStatus(ctx context.Context, itemID string, status model.Status) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.ChecklistType.Allows(status) {
		return nil, &InvalidStatusError{Type: item.ChecklistType, Status: status}
	}
	if item.Status == status {
		return item, nil
	}

	old := item.Status
	item.Status = status
	e.record(item, actor, model.ActionStatusChanged,
		fmt.Sprintf("Status changed from '%s' to '%s'", old.Label(), status.Label()))
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}
	e.syncMirror(ctx, item)

	e.notify(ctx, actor, model.NotificationRequest{
		UserIDs:  item.AssignedTo,
		Message:  fmt.Sprintf("%s changed %q to %s", actor.FullName(), item.ItemName, status.Label()),
		Type:     model.NotificationTypeStatusChange,
		EntityID: item.ID,
		LinkURL:  e.itemLink(item),
	})
	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return item, nil
}

// SetFirstReview checks or unchecks the first review of a document item.
// Checking it moves the item to first_review_done. Unchecking clears the
// review fields and leaves the status untouched; it is refused while the
// second review is recorded.
func (e *Engine) SetFirstReview(ctx context.Context, itemID string, completed bool) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsDocument() {
		return nil, ErrNotDocumentItem
	}
	if item.Review == nil {
		item.Review = &model.DocumentReview{}
	}
	if item.Review.FirstDone() == completed {
		return item, nil
	}
	if !completed && item.Review.SecondDone() {
		return nil, ErrSecondReviewRecorded
	}

	if completed {
		now := e.now().UTC()
		by := actor.ID
		item.Review.FirstReviewCompletedBy = &by
		item.Review.FirstReviewCompletedDate = &now
		old := item.Status
		item.Status = model.StatusFirstReviewDone
		e.record(item, actor, model.ActionFirstReviewChecked, reviewDetails("First review completed", old, item.Status))
	} else {
		item.Review.FirstReviewCompletedBy = nil
		item.Review.FirstReviewCompletedDate = nil
		e.record(item, actor, model.ActionFirstReviewUnchecked, "First review unchecked")
	}
	return e.commitReview(ctx, item)
}

// SetSecondReview checks or unchecks the second review of a document
// item. It can only be checked once the first review is recorded.
func (e *Engine) SetSecondReview(ctx context.Context, itemID string, completed bool) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsDocument() {
		return nil, ErrNotDocumentItem
	}
	if item.Review == nil {
		item.Review = &model.DocumentReview{}
	}
	if completed && !item.Review.FirstDone() {
		return nil, ErrFirstReviewRequired
	}
	if item.Review.SecondDone() == completed {
		return item, nil
	}

	if completed {
		now := e.now().UTC()
		by := actor.ID
		item.Review.SecondReviewCompletedBy = &by
		item.Review.SecondReviewCompletedDate = &now
		old := item.Status
		item.Status = model.StatusSecondReviewDone
		e.record(item, actor, model.ActionSecondReviewChecked, reviewDetails("Second review completed", old, item.Status))
	} else {
		item.Review.SecondReviewCompletedBy = nil
		item.Review.SecondReviewCompletedDate = nil
		e.record(item, actor, model.ActionSecondReviewUnchecked, "Second review unchecked")
	}
	return e.commitReview(ctx, item)
}

// reviewDetails appends the status transition a review check caused.
func reviewDetails(what string, from, to model.Status) string {
	if from == to {
		return what
	}
	return fmt.Sprintf("%s. Status changed from '%s' to '%s'", what, from.Label(), to.Label())
}

func (e *Engine) commitReview(ctx context.Context, item *model.ChecklistItem) (*model.ChecklistItem, error) {
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}
	e.syncMirror(ctx, item)
	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return item, nil
}
