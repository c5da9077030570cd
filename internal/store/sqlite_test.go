package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
	"github.com/nhle/loan-checklist/tests/testutil"
)

func TestChecklistItem_CreateAndGet(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	item := &model.ChecklistItem{
		LoanID:        "loan-1",
		ChecklistType: model.ChecklistTypeDocument,
		Category:      "Borrower Document",
		ItemName:      "Government-Issued ID",
	}
	require.NoError(t, s.CreateChecklistItem(ctx, item))
	require.NotEmpty(t, item.ID)

	got, err := s.GetChecklistItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, "Government-Issued ID", got.ItemName)
	require.NotNil(t, got.Review, "document items always carry a review")
	assert.False(t, got.Review.FirstDone())
	assert.Empty(t, got.ActivityHistory)
}

func TestChecklistItem_ActionItemHasNoReview(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	item := &model.ChecklistItem{
		LoanID:        "loan-1",
		ChecklistType: model.ChecklistTypeActionItem,
		ItemName:      "Order Appraisal",
	}
	require.NoError(t, s.CreateChecklistItem(ctx, item))

	got, err := s.GetChecklistItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, got.Status)
	assert.Nil(t, got.Review)
}

func TestChecklistItem_UpdateRoundTripsCollections(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	item := &model.ChecklistItem{
		LoanID:        "loan-1",
		ChecklistType: model.ChecklistTypeDocument,
		ItemName:      "Appraisal Report",
	}
	require.NoError(t, s.CreateChecklistItem(ctx, item))

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	reviewer := "u-1"
	item.Status = model.StatusFirstReviewDone
	item.AssignedTo = []string{"u-2"}
	item.Notes = []model.Comment{{ID: "c1", Text: "hi", AuthorID: "u-1", Mentions: []string{"u-2"}, CreatedAt: now}}
	item.UploadedFiles = []model.FileRef{{FileURL: "https://files/a.pdf", FileName: "a.pdf", UploadedBy: "u-1", UploadedDate: now}}
	item.ActivityHistory = []model.ActivityEntry{{Timestamp: now, UserID: "u-1", Action: model.ActionFirstReviewChecked}}
	item.Review.FirstReviewCompletedBy = &reviewer
	item.Review.FirstReviewCompletedDate = &now
	require.NoError(t, s.UpdateChecklistItem(ctx, item))

	got, err := s.GetChecklistItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFirstReviewDone, got.Status)
	assert.Equal(t, []string{"u-2"}, got.AssignedTo)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, []string{"u-2"}, got.Notes[0].Mentions)
	require.Len(t, got.UploadedFiles, 1)
	assert.Equal(t, "a.pdf", got.UploadedFiles[0].FileName)
	require.Len(t, got.ActivityHistory, 1)
	require.True(t, got.Review.FirstDone())
	assert.Equal(t, "u-1", *got.Review.FirstReviewCompletedBy)
	assert.True(t, now.Equal(*got.Review.FirstReviewCompletedDate))
	assert.False(t, got.Review.SecondDone())
}

func TestChecklistItem_UpdateMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpdateChecklistItem(context.Background(), &model.ChecklistItem{ID: "nope"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestChecklistItem_GetMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetChecklistItemByID(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestChecklistItem_DuplicateKeyRejected(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := &model.ChecklistItem{LoanID: "loan-1", ChecklistType: model.ChecklistTypeActionItem, ItemName: "Order Appraisal"}
	require.NoError(t, s.CreateChecklistItem(ctx, first))

	dup := &model.ChecklistItem{LoanID: "loan-1", ChecklistType: model.ChecklistTypeActionItem, ItemName: " order appraisal "}
	assert.Error(t, s.CreateChecklistItem(ctx, dup))

	otherLoan := &model.ChecklistItem{LoanID: "loan-2", ChecklistType: model.ChecklistTypeActionItem, ItemName: "Order Appraisal"}
	assert.NoError(t, s.CreateChecklistItem(ctx, otherLoan))
}

func TestGetChecklistItems_Filters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, it := range []model.ChecklistItem{
		{LoanID: "loan-1", ChecklistType: model.ChecklistTypeActionItem, ItemName: "A"},
		{LoanID: "loan-1", ChecklistType: model.ChecklistTypeDocument, ItemName: "B"},
		{LoanID: "loan-1", ChecklistType: model.ChecklistTypeDocument, ItemName: "C"},
		{LoanID: "loan-2", ChecklistType: model.ChecklistTypeDocument, ItemName: "D"},
	} {
		it := it
		require.NoError(t, s.CreateChecklistItem(ctx, &it))
	}

	all, err := s.GetChecklistItems(ctx, store.ChecklistFilter{LoanID: "loan-1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].ItemName)

	docType := model.ChecklistTypeDocument
	docs, err := s.GetChecklistItems(ctx, store.ChecklistFilter{LoanID: "loan-1", ChecklistType: &docType})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	pending := model.StatusPending
	pendingDocs, err := s.GetChecklistItems(ctx, store.ChecklistFilter{LoanID: "loan-2", Status: &pending})
	require.NoError(t, err)
	assert.Len(t, pendingDocs, 1)
}

func TestLoanDocuments_CRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	itemID := "item-1"
	for _, name := range []string{"a.pdf", "b.pdf"} {
		doc := &model.LoanDocument{
			LoanID:          "loan-1",
			DocumentName:    name,
			FileURL:         "https://files/" + name,
			Status:          model.StatusPending,
			ChecklistItemID: &itemID,
		}
		require.NoError(t, s.CreateLoanDocument(ctx, doc))
	}
	unlinked := &model.LoanDocument{LoanID: "loan-1", DocumentName: "c.pdf", FileURL: "https://files/c.pdf", Status: model.StatusSubmitted}
	require.NoError(t, s.CreateLoanDocument(ctx, unlinked))
	assert.Equal(t, model.DocumentCategoryApplication, unlinked.Category)

	linked, err := s.GetLoanDocuments(ctx, store.DocumentFilter{LoanID: "loan-1", ChecklistItemID: &itemID})
	require.NoError(t, err)
	require.Len(t, linked, 2)

	require.NoError(t, s.UpdateLoanDocumentStatus(ctx, linked[0].ID, model.StatusApproved))

	url := "https://files/a.pdf"
	byURL, err := s.GetLoanDocuments(ctx, store.DocumentFilter{LoanID: "loan-1", FileURL: &url})
	require.NoError(t, err)
	require.Len(t, byURL, 1)
	assert.Equal(t, model.StatusApproved, byURL[0].Status)
	require.NotNil(t, byURL[0].ChecklistItemID)
	assert.Equal(t, itemID, *byURL[0].ChecklistItemID)

	require.NoError(t, s.DeleteLoanDocument(ctx, byURL[0].ID))
	assert.ErrorIs(t, s.DeleteLoanDocument(ctx, byURL[0].ID), store.ErrNotFound)

	all, err := s.GetLoanDocuments(ctx, store.DocumentFilter{LoanID: "loan-1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoan_UpsertAndBorrowers(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	loan := testutil.SeedLoan(t, s, testutil.Product(model.LoanTypeDSCR),
		model.Borrower{FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"},
		model.Borrower{FirstName: "Bo", LastName: "Chen", Email: "bo@example.com"},
	)
	require.NotNil(t, loan.LoanProduct)
	assert.Equal(t, model.LoanTypeDSCR, *loan.LoanProduct)
	assert.Len(t, loan.BorrowerIDs, 2)

	borrowers, err := s.GetBorrowersForLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, borrowers, 2)
	assert.Equal(t, "Ana Diaz", borrowers[0].FullName())

	loan.LoanProduct = nil
	loan.TeamMemberIDs = []string{"u-1", "u-2"}
	loan.BorrowerIDs = loan.BorrowerIDs[1:]
	require.NoError(t, s.UpsertLoan(ctx, *loan))

	got, err := s.GetLoanByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LoanProduct)
	assert.Equal(t, []string{"u-1", "u-2"}, got.TeamMemberIDs)
	assert.Len(t, got.BorrowerIDs, 1)
}

func TestLoan_GetMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetLoanByID(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, model.User{ID: "u-1", FirstName: "Jane", LastName: "Smith", Role: model.RoleLoanOfficer}))
	require.NoError(t, s.UpsertUser(ctx, model.User{ID: "u-2", FirstName: "Al", LastName: "Ng", Role: model.RoleProcessor}))

	u, err := s.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", u.FullName())
	assert.True(t, u.Elevated())

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Al", users[0].FirstName)

	_, err = s.GetUserByID(ctx, "u-9")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotifications(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateNotification(ctx, model.Notification{UserID: "u-1", Type: model.NotificationTypeMention, Message: "first"}))
	require.NoError(t, s.CreateNotification(ctx, model.Notification{UserID: "u-1", Type: model.NotificationTypeAssignment, Message: "second"}))
	require.NoError(t, s.CreateNotification(ctx, model.Notification{UserID: "u-2", Type: model.NotificationTypeMention, Message: "other"}))

	unread, err := s.GetUnreadNotifications(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, model.PriorityNormal, unread[0].Priority)

	require.NoError(t, s.MarkNotificationRead(ctx, unread[0].ID))
	unread, err = s.GetUnreadNotifications(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	assert.ErrorIs(t, s.MarkNotificationRead(ctx, "missing"), store.ErrNotFound)
}
