package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/catalog"
	"github.com/nhle/loan-checklist/internal/model"
)

func TestSummarize(t *testing.T) {
	items := []model.ChecklistItem{
		{ChecklistType: model.ChecklistTypeActionItem, Status: model.StatusCompleted},
		{ChecklistType: model.ChecklistTypeActionItem, Status: model.StatusInProgress},
		{ChecklistType: model.ChecklistTypeActionItem, Status: model.StatusFlagged},
		{ChecklistType: model.ChecklistTypeDocument, Status: model.StatusApproved},
		{ChecklistType: model.ChecklistTypeDocument, Status: model.StatusApprovedWithCondition},
		{ChecklistType: model.ChecklistTypeDocument, Status: model.StatusSecondReviewDone},
		{ChecklistType: model.ChecklistTypeDocument, Status: model.StatusRejected},
	}

	s := Summarize(items)

	assert.Equal(t, Progress{Total: 3, Completed: 1}, s.ActionItems)
	assert.Equal(t, Progress{Total: 4, Completed: 2}, s.Documents)
	assert.Equal(t, 33, s.ActionItems.Percent())
	assert.Equal(t, 50, s.Documents.Percent())
	assert.Equal(t, 0, Progress{}.Percent())
}

func TestGroupByCategory(t *testing.T) {
	cat := catalog.Default()
	items := []model.ChecklistItem{
		{ChecklistType: model.ChecklistTypeDocument, Category: catalog.CategoryClosingDocument, ItemName: "Settlement Statement"},
		{ChecklistType: model.ChecklistTypeActionItem, Category: "Custom", ItemName: "Call Borrower"},
		{ChecklistType: model.ChecklistTypeActionItem, Category: catalog.CategoryClosing, ItemName: "Schedule Closing"},
		{ChecklistType: model.ChecklistTypeActionItem, Category: catalog.CategoryApplication, ItemName: "Pull Credit Report"},
		{ChecklistType: model.ChecklistTypeDocument, Category: catalog.CategoryBorrowerDocument, ItemName: "Government-Issued ID"},
		{ChecklistType: model.ChecklistTypeActionItem, Category: catalog.CategoryApplication, ItemName: "Run Background Check"},
	}

	groups := GroupByCategory(items, cat)

	require.Len(t, groups, 5)
	got := make([]string, len(groups))
	for i, g := range groups {
		got[i] = g.Category
	}
	assert.Equal(t, []string{
		catalog.CategoryApplication,
		catalog.CategoryClosing,
		"Custom",
		catalog.CategoryBorrowerDocument,
		catalog.CategoryClosingDocument,
	}, got)

	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "Pull Credit Report", groups[0].Items[0].ItemName)
	assert.Equal(t, "Run Background Check", groups[0].Items[1].ItemName)
	assert.Equal(t, model.ChecklistTypeDocument, groups[3].ChecklistType)
}

func TestGroupByCategory_NilCatalog(t *testing.T) {
	items := []model.ChecklistItem{
		{ChecklistType: model.ChecklistTypeActionItem, Category: "B"},
		{ChecklistType: model.ChecklistTypeActionItem, Category: "A"},
	}

	groups := GroupByCategory(items, nil)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Category)
	assert.Equal(t, "A", groups[1].Category)
}
