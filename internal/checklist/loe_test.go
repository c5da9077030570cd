package checklist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/model"
)

func TestRequestLOE_NoBorrowers(t *testing.T) {
	f := materialized(t)
	item := f.item(t, "Bank Statements (2 Months)")

	_, err := f.engine.RequestLOE(context.Background(), item.ID)

	var nb *checklist.NoBorrowersError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, f.loan.ID, nb.LoanID)

	stored := f.item(t, "Bank Statements (2 Months)")
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.Empty(t, stored.ActivityHistory)
	assert.Empty(t, f.mailer.sent)
}

func TestRequestLOE_EmailsEveryBorrower(t *testing.T) {
	f := materialized(t,
		model.Borrower{FirstName: "Maria", LastName: "Garcia", Email: "maria@borrower.test"},
		model.Borrower{FirstName: "Li", LastName: "Wei", Email: "li@borrower.test"},
	)
	ctx := context.Background()
	item := f.item(t, "Bank Statements (2 Months)")
	f.mailer.fail["maria@borrower.test"] = true

	_, err := f.engine.AddFiles(ctx, item.ID, "", upload("statement.pdf"))
	require.NoError(t, err)

	got, err := f.engine.RequestLOE(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLetterOfExplanationRequested, got.Status)

	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, "maria@borrower.test", f.mailer.sent[0].To)
	assert.Equal(t, "li@borrower.test", f.mailer.sent[1].To)
	assert.Equal(t, "Letter of Explanation Requested: Bank Statements (2 Months)", f.mailer.sent[1].Subject)
	assert.Contains(t, f.mailer.sent[1].Body, "Hello Li Wei")

	stored := f.item(t, "Bank Statements (2 Months)")
	assert.Equal(t, model.StatusLetterOfExplanationRequested, stored.Status)
	assert.Equal(t, model.ActionLOERequested, lastActivity(stored).Action)
	assert.Equal(t, model.StatusLetterOfExplanationRequested, f.linkedDocs(t, item.ID)[0].Status)
}

func TestRequestLOE_NotifiesTeam(t *testing.T) {
	f := materialized(t, model.Borrower{FirstName: "Maria", LastName: "Garcia", Email: "maria@borrower.test"})
	ctx := context.Background()

	loan := *f.loan
	loan.TeamMemberIDs = []string{actor.ID, omar.ID}
	require.NoError(t, f.store.UpsertLoan(ctx, loan))

	item := f.item(t, "Bank Statements (2 Months)")
	_, err := f.engine.Assign(ctx, item.ID, []string{jane.ID})
	require.NoError(t, err)

	_, err = f.engine.RequestLOE(ctx, item.ID)
	require.NoError(t, err)

	reqs := f.notifier.ofType(model.NotificationTypeLOE)
	require.Len(t, reqs, 1)
	assert.Equal(t, []string{jane.ID, omar.ID}, reqs[0].UserIDs)
	assert.Equal(t, model.PriorityHigh, reqs[0].Priority)
}

func TestRequestLOE_ActionItemRejected(t *testing.T) {
	f := materialized(t, model.Borrower{FirstName: "Maria", LastName: "Garcia"})
	item := f.item(t, "Order Appraisal")

	_, err := f.engine.RequestLOE(context.Background(), item.ID)
	assert.ErrorIs(t, err, checklist.ErrNotDocumentItem)
}

func TestRequestLOE_SkipsBorrowerWithoutEmail(t *testing.T) {
	f := materialized(t,
		model.Borrower{FirstName: "No", LastName: "Email"},
		model.Borrower{FirstName: "Li", LastName: "Wei", Email: "li@borrower.test"},
	)
	item := f.item(t, "Government-Issued ID")

	_, err := f.engine.RequestLOE(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "li@borrower.test", f.mailer.sent[0].To)
}
