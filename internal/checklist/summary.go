package checklist

import (
	"github.com/nhle/loan-checklist/internal/catalog"
	"github.com/nhle/loan-checklist/internal/model"
)

// Progress counts items of one checklist type.
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Percent returns completion as a whole percentage.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// Summary is the progress of a loan's checklist per type.
type Summary struct {
	ActionItems Progress `json:"action_items"`
	Documents   Progress `json:"documents"`
}

// Summarize counts total and completed items per checklist type.
func Summarize(items []model.ChecklistItem) Summary {
	var s Summary
	for _, item := range items {
		switch item.ChecklistType {
		case model.ChecklistTypeActionItem:
			s.ActionItems.Total++
			if item.Status == model.StatusCompleted {
				s.ActionItems.Completed++
			}
		case model.ChecklistTypeDocument:
			s.Documents.Total++
			if item.Status == model.StatusApproved || item.Status == model.StatusApprovedWithCondition {
				s.Documents.Completed++
			}
		}
	}
	return s
}

// Group is the items of one category.
type Group struct {
	ChecklistType model.ChecklistType   `json:"checklist_type"`
	Category      string                `json:"category"`
	Items         []model.ChecklistItem `json:"items"`
}

// GroupByCategory groups items for display: action items before
// documents, categories in catalog order, and categories the catalog does
// not know after those in the order they first appear.
func GroupByCategory(items []model.ChecklistItem, cat *catalog.Catalog) []Group {
	var groups []Group
	for _, t := range []model.ChecklistType{model.ChecklistTypeActionItem, model.ChecklistTypeDocument} {
		byCategory := make(map[string][]model.ChecklistItem)
		var unknown []string
		for _, item := range items {
			if item.ChecklistType != t {
				continue
			}
			if _, ok := byCategory[item.Category]; !ok {
				unknown = append(unknown, item.Category)
			}
			byCategory[item.Category] = append(byCategory[item.Category], item)
		}

		var order []string
		if cat != nil {
			order = cat.CategoryOrder(t)
		}
		placed := make(map[string]bool, len(order))
		for _, c := range order {
			placed[c] = true
			if len(byCategory[c]) > 0 {
				groups = append(groups, Group{ChecklistType: t, Category: c, Items: byCategory[c]})
			}
		}
		for _, c := range unknown {
			if !placed[c] {
				groups = append(groups, Group{ChecklistType: t, Category: c, Items: byCategory[c]})
			}
		}
	}
	return groups
}
