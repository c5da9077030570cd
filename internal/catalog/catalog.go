// Package catalog holds the static checklist templates that every loan's
// checklist is materialized from.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nhle/loan-checklist/internal/model"
)

// Entry is one template line. Its identity is the normalized
// (ChecklistType, ItemName) pair.
type Entry struct {
	ChecklistType       model.ChecklistType `yaml:"-" json:"checklist_type"`
	Category            string              `yaml:"category" json:"category"`
	ItemName            string              `yaml:"item_name" json:"item_name"`
	Description         string              `yaml:"description,omitempty" json:"description,omitempty"`
	Provider            string              `yaml:"provider,omitempty" json:"provider,omitempty"`
	ApplicableLoanTypes []model.LoanType    `yaml:"applicable_loan_types,omitempty" json:"applicable_loan_types,omitempty"`
	DocumentCategory    string              `yaml:"document_category,omitempty" json:"document_category,omitempty"`
}

// Key returns the normalized identity of the entry.
func (e Entry) Key() string {
	return model.NormalizeKey(e.ChecklistType, e.ItemName)
}

// AppliesTo reports whether the entry is required for the loan product.
// An entry without ApplicableLoanTypes applies to every product.
func (e Entry) AppliesTo(lt model.LoanType) bool {
	if len(e.ApplicableLoanTypes) == 0 {
		return true
	}
	for _, t := range e.ApplicableLoanTypes {
		if t == lt {
			return true
		}
	}
	return false
}

// Catalog is a read-only registry of checklist templates.
type Catalog struct {
	entries    map[model.ChecklistType][]Entry
	categories map[model.ChecklistType][]string
}

// New builds a catalog from ordered action item and document entries.
// Entry types are forced to match the list they are declared in, and
// duplicate keys are rejected.
func New(actionItems, documents []Entry, actionCategories, documentCategories []string) (*Catalog, error) {
	c := &Catalog{
		entries:    make(map[model.ChecklistType][]Entry, 2),
		categories: make(map[model.ChecklistType][]string, 2),
	}

	seen := make(map[string]bool)
	add := func(t model.ChecklistType, list []Entry) error {
		out := make([]Entry, 0, len(list))
		for _, e := range list {
			e.ChecklistType = t
			if strings.TrimSpace(e.ItemName) == "" {
				return fmt.Errorf("%s template in category %q has no item name", t, e.Category)
			}
			if seen[e.Key()] {
				return fmt.Errorf("duplicate %s template %q", t, e.ItemName)
			}
			seen[e.Key()] = true
			out = append(out, e)
		}
		c.entries[t] = out
		return nil
	}

	if err := add(model.ChecklistTypeActionItem, actionItems); err != nil {
		return nil, err
	}
	if err := add(model.ChecklistTypeDocument, documents); err != nil {
		return nil, err
	}

	c.categories[model.ChecklistTypeActionItem] = append([]string(nil), actionCategories...)
	c.categories[model.ChecklistTypeDocument] = append([]string(nil), documentCategories...)
	return c, nil
}

// EntriesFor returns the templates of one checklist type in declared order.
func (c *Catalog) EntriesFor(t model.ChecklistType) []Entry {
	return append([]Entry(nil), c.entries[t]...)
}

// CategoryOrder returns the canonical display order of categories for one
// checklist type.
func (c *Catalog) CategoryOrder(t model.ChecklistType) []string {
	return append([]string(nil), c.categories[t]...)
}

// ApplicableTo returns every template required for the loan product:
// action items first, then documents, each in declared order.
func (c *Catalog) ApplicableTo(lt model.LoanType) []Entry {
	var out []Entry
	for _, t := range []model.ChecklistType{model.ChecklistTypeActionItem, model.ChecklistTypeDocument} {
		for _, e := range c.entries[t] {
			if e.AppliesTo(lt) {
				out = append(out, e)
			}
		}
	}
	return out
}

// fileFormat is the YAML layout accepted by LoadFile.
type fileFormat struct {
	ActionItemCategories []string `yaml:"action_item_categories"`
	DocumentCategories   []string `yaml:"document_categories"`
	ActionItems          []Entry  `yaml:"action_items"`
	Documents            []Entry  `yaml:"documents"`
}

// LoadFile reads a catalog from a YAML file. Category order lists that
// are omitted fall back to the order categories first appear in.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	if len(f.ActionItemCategories) == 0 {
		f.ActionItemCategories = categoriesOf(f.ActionItems)
	}
	if len(f.DocumentCategories) == 0 {
		f.DocumentCategories = categoriesOf(f.Documents)
	}

	c, err := New(f.ActionItems, f.Documents, f.ActionItemCategories, f.DocumentCategories)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// categoriesOf lists distinct categories in first-seen order.
func categoriesOf(entries []Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out
}
