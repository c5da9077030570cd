package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/loan-checklist/internal/mention"
	"github.com/nhle/loan-checklist/internal/model"
)

// AddComment appends a comment to the item. Mentions of known users are
// resolved and those users, other than the author, are notified.
func (e *Engine) AddComment(ctx context.Context, itemID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}

	users, err := e.store.GetUsers(ctx)
	if err != nil {
		e.logger.Warn("loading users for mentions failed", "item_id", item.ID, "error", err)
	}
	mentions := mention.Extract(text, users)

	comment := model.Comment{
		ID:         uuid.New().String(),
		Text:       text,
		AuthorID:   actor.ID,
		AuthorName: actor.FullName(),
		Mentions:   mentions,
		CreatedAt:  e.now().UTC(),
	}
	item.Notes = append(item.Notes, comment)

	details := "Added a comment"
	if len(mentions) > 0 {
		details = fmt.Sprintf("Added a comment mentioning %d user(s)", len(mentions))
	}
	e.record(item, actor, model.ActionCommentAdded, details)
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}

	e.notify(ctx, actor, model.NotificationRequest{
		UserIDs:  mentions,
		Message:  fmt.Sprintf("%s mentioned you on %q", actor.FullName(), item.ItemName),
		Type:     model.NotificationTypeMention,
		EntityID: item.ID,
		LinkURL:  e.itemLink(item),
	})
	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return &comment, nil
}

// DeleteComment removes a comment by id. Confirmation is the caller's
// concern.
func (e *Engine) DeleteComment(ctx context.Context, itemID, commentID string) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range item.Notes {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("comment %s on item %s: %w", commentID, itemID, ErrCommentNotFound)
	}

	item.Notes = append(item.Notes[:idx:idx], item.Notes[idx+1:]...)
	e.record(item, actor, model.ActionCommentDeleted, "Deleted a comment")
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}
	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return item, nil
}

// RenderComments splits each of the item's comments into text and
// mention segments, keyed by comment id.
func (e *Engine) RenderComments(ctx context.Context, item *model.ChecklistItem) (map[string][]mention.Segment, error) {
	rendered := make(map[string][]mention.Segment, len(item.Notes))
	if len(item.Notes) == 0 {
		return rendered, nil
	}
	users, err := e.store.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for _, c := range item.Notes {
		rendered[c.ID] = mention.Render(c.Text, users)
	}
	return rendered, nil
}

// MentionSuggestions lists the users the current actor may mention on a
// loan, narrowed to those whose name starts with query.
func (e *Engine) MentionSuggestions(ctx context.Context, loanID, query string) ([]model.User, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := e.store.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loading loan %s: %w", loanID, err)
	}
	users, err := e.store.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return mention.FilterByPrefix(mention.Suggestions(*actor, loan.TeamMemberIDs, users), query), nil
}
