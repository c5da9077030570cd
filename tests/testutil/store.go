package testutil

import (
	"context"
	"testing"

	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedLoan stores a loan with the given product and borrowers and
// returns it as read back from the store.
func SeedLoan(
	t *testing.T,
	s store.Store,
	product *model.LoanType,
	borrowers ...model.Borrower,
) *model.Loan {
	t.Helper()
	ctx := context.Background()

	loan := model.Loan{LoanNumber: "LN-1001", LoanProduct: product, PropertyAddress: "12 Elm St"}
	for i := range borrowers {
		if err := s.CreateBorrower(ctx, &borrowers[i]); err != nil {
			t.Fatalf("seeding borrower: %v", err)
		}
		loan.BorrowerIDs = append(loan.BorrowerIDs, borrowers[i].ID)
	}
	loan.ID = "loan-" + loan.LoanNumber
	if err := s.UpsertLoan(ctx, loan); err != nil {
		t.Fatalf("seeding loan: %v", err)
	}

	stored, err := s.GetLoanByID(ctx, loan.ID)
	if err != nil {
		t.Fatalf("reading seeded loan: %v", err)
	}
	return stored
}

// Product returns a pointer to lt for use in loan fixtures.
func Product(lt model.LoanType) *model.LoanType {
	return &lt
}
