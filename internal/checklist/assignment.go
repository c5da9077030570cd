package checklist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/loan-checklist/internal/model"
)

// Assign replaces the item's assignees. Users who were not already
// assigned are notified.
func (e *Engine) Assign(ctx context.Context, itemID string, userIDs []string) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}

	userIDs = without(userIDs, "")
	previous := make(map[string]bool, len(item.AssignedTo))
	for _, id := range item.AssignedTo {
		previous[id] = true
	}
	var added []string
	for _, id := range userIDs {
		if !previous[id] {
			added = append(added, id)
		}
	}

	item.AssignedTo = userIDs
	if len(userIDs) == 0 {
		e.record(item, actor, model.ActionUnassigned, "Removed all assignees")
	} else {
		e.record(item, actor, model.ActionAssigned, "Assigned to "+e.displayNames(ctx, userIDs))
	}
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}

	e.notify(ctx, actor, model.NotificationRequest{
		UserIDs:  added,
		Message:  fmt.Sprintf("%s assigned you to %q", actor.FullName(), item.ItemName),
		Type:     model.NotificationTypeAssignment,
		EntityID: item.ID,
		LinkURL:  e.itemLink(item),
	})
	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return item, nil
}

// SetDueDate sets or, with nil, clears the item's due date.
func (e *Engine) SetDueDate(ctx context.Context, itemID string, due *time.Time) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := "Due date cleared"
	if due != nil {
		d := due.UTC()
		due = &d
		details = "Due date set to " + d.Format("2006-01-02")
	}
	item.DueDate = due
	e.record(item, actor, model.ActionDueDateChanged, details)
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}
	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return item, nil
}

// displayNames renders user ids as full names, falling back to the id
// for unknown users.
func (e *Engine) displayNames(ctx context.Context, ids []string) string {
	users, err := e.store.GetUsers(ctx)
	if err != nil {
		e.logger.Warn("loading users failed", "error", err)
	}
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		if u, ok := byID[id]; ok {
			names[i] = u.FullName()
		} else {
			names[i] = id
		}
	}
	return strings.Join(names, ", ")
}
