package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/loan-checklist/internal/model"
)

// UpsertLoan inserts or replaces a loan and rewrites its borrower links
// in the order given by BorrowerIDs.
func (s *SQLiteStore) UpsertLoan(ctx context.Context, loan model.Loan) error {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = now
	}

	team, err := encodeJSON(loan.TeamMemberIDs)
	if err != nil {
		return fmt.Errorf("marshaling team members for loan %s: %w", loan.ID, err)
	}

	var product *string
	if loan.LoanProduct != nil {
		p := string(*loan.LoanProduct)
		product = &p
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loans (
			id, loan_number, loan_product, property_address,
			team_member_ids, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			loan_number = excluded.loan_number,
			loan_product = excluded.loan_product,
			property_address = excluded.property_address,
			team_member_ids = excluded.team_member_ids,
			updated_at = excluded.updated_at`,
		loan.ID, loan.LoanNumber, product, loan.PropertyAddress,
		team, loan.CreatedAt, now,
	)
	if err != nil {
		return fmt.Errorf("upserting loan %s: %w", loan.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM loan_borrowers WHERE loan_id = ?", loan.ID); err != nil {
		return fmt.Errorf("clearing borrowers for loan %s: %w", loan.ID, err)
	}
	for i, borrowerID := range loan.BorrowerIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO loan_borrowers (loan_id, borrower_id, position) VALUES (?, ?, ?)",
			loan.ID, borrowerID, i,
		); err != nil {
			return fmt.Errorf("linking borrower %s to loan %s: %w", borrowerID, loan.ID, err)
		}
	}

	return tx.Commit()
}

// GetLoanByID retrieves a loan with its borrower ids.
func (s *SQLiteStore) GetLoanByID(ctx context.Context, id string) (*model.Loan, error) {
	var (
		loan    model.Loan
		product *string
		team    string
	)

	err := s.db.QueryRowxContext(ctx, `
		SELECT id, loan_number, loan_product, property_address,
			team_member_ids, created_at, updated_at
		FROM loans WHERE id = ?`, id).Scan(
		&loan.ID, &loan.LoanNumber, &product, &loan.PropertyAddress,
		&team, &loan.CreatedAt, &loan.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "loan", id)
	}

	if product != nil {
		lt := model.LoanType(*product)
		loan.LoanProduct = &lt
	}
	if err := decodeJSON(team, &loan.TeamMemberIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling team members for loan %s: %w", id, err)
	}

	if err := s.db.SelectContext(ctx, &loan.BorrowerIDs,
		"SELECT borrower_id FROM loan_borrowers WHERE loan_id = ? ORDER BY position",
		id); err != nil {
		return nil, fmt.Errorf("loading borrowers for loan %s: %w", id, err)
	}

	return &loan, nil
}

// CreateBorrower inserts a borrower. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateBorrower(ctx context.Context, b *model.Borrower) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now().UTC()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO borrowers (id, first_name, last_name, email, phone, created_at)
		VALUES (:id, :first_name, :last_name, :email, :phone, :created_at)`, b)
	if err != nil {
		return fmt.Errorf("creating borrower: %w", err)
	}
	return nil
}

// GetBorrowersForLoan returns a loan's borrowers in link order.
func (s *SQLiteStore) GetBorrowersForLoan(
	ctx context.Context,
	loanID string,
) ([]model.Borrower, error) {
	var borrowers []model.Borrower
	err := s.db.SelectContext(ctx, &borrowers, `
		SELECT b.id, b.first_name, b.last_name, b.email, b.phone, b.created_at
		FROM borrowers b
		INNER JOIN loan_borrowers lb ON lb.borrower_id = b.id
		WHERE lb.loan_id = ?
		ORDER BY lb.position`, loanID)
	if err != nil {
		return nil, fmt.Errorf("querying borrowers for loan %s: %w", loanID, err)
	}
	return borrowers, nil
}

// UpsertUser inserts or replaces a directory user.
func (s *SQLiteStore) UpsertUser(ctx context.Context, u model.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO users (id, first_name, last_name, email, role, created_at)
		VALUES (:id, :first_name, :last_name, :email, :role, :created_at)`, u)
	if err != nil {
		return fmt.Errorf("upserting user %s: %w", u.ID, err)
	}
	return nil
}

// GetUserByID retrieves one directory user.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u,
		"SELECT id, first_name, last_name, email, role, created_at FROM users WHERE id = ?", id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

// GetUsers returns every directory user ordered by name.
func (s *SQLiteStore) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, first_name, last_name, email, role, created_at
		FROM users ORDER BY first_name, last_name`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}
