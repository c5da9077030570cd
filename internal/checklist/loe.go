package checklist

import (
	"context"
	"fmt"

	"github.com/nhle/loan-checklist/internal/model"
)

// RequestLOE asks the loan's borrowers for a letter of explanation about
// a document item. The status change is committed before any borrower is
// emailed; email failures are logged and do not stop the remaining
// borrowers.
func (e *Engine) RequestLOE(ctx context.Context, itemID string) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsDocument() {
		return nil, ErrNotDocumentItem
	}

	borrowers, err := e.store.GetBorrowersForLoan(ctx, item.LoanID)
	if err != nil {
		return nil, fmt.Errorf("loading borrowers for loan %s: %w", item.LoanID, err)
	}
	if len(borrowers) == 0 {
		return nil, &NoBorrowersError{LoanID: item.LoanID}
	}

	item.Status = model.StatusLetterOfExplanationRequested
	e.record(item, actor, model.ActionLOERequested,
		fmt.Sprintf("Letter of explanation requested from %d borrower(s)", len(borrowers)))
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}
	e.syncMirror(ctx, item)

	recipients := append([]string(nil), item.AssignedTo...)
	if loan, err := e.store.GetLoanByID(ctx, item.LoanID); err == nil {
		recipients = append(recipients, loan.TeamMemberIDs...)
	} else {
		e.logger.Warn("loading loan team failed", "loan_id", item.LoanID, "error", err)
	}
	e.notify(ctx, actor, model.NotificationRequest{
		UserIDs:  recipients,
		Message:  fmt.Sprintf("%s requested a letter of explanation for %q", actor.FullName(), item.ItemName),
		Type:     model.NotificationTypeLOE,
		EntityID: item.ID,
		LinkURL:  e.itemLink(item),
		Priority: model.PriorityHigh,
	})

	for _, b := range borrowers {
		e.emailBorrower(ctx, item, actor, b)
	}

	e.publish(EventItemUpdated, item.LoanID, item.ID)
	return item, nil
}

func (e *Engine) emailBorrower(ctx context.Context, item *model.ChecklistItem, actor *model.User, b model.Borrower) {
	if e.mailer == nil {
		return
	}
	if b.Email == "" {
		e.logger.Warn("borrower has no email address", "loan_id", item.LoanID, "borrower_id", b.ID)
		return
	}

	email := model.Email{
		To:      b.Email,
		Subject: fmt.Sprintf("Letter of Explanation Requested: %s", item.ItemName),
		Body: fmt.Sprintf(
			"Hello %s,\n\nWe need a letter of explanation regarding %q for your loan.\n"+
				"Please reply with your explanation at your earliest convenience.\n\n"+
				"Thank you,\n%s\n",
			b.FullName(), item.ItemName, actor.FullName()),
	}
	if err := e.mailer.SendEmail(ctx, email); err != nil {
		e.logger.Error("sending LOE email failed",
			"loan_id", item.LoanID, "item_id", item.ID, "borrower_id", b.ID, "error", err)
	}
}
