package model

import (
	"strings"
	"time"
)

// LoanType identifies a loan product. Templates declare which products
// they apply to.
type LoanType string

const (
	LoanTypeFixAndFlip           LoanType = "fix_and_flip"
	LoanTypeBridge               LoanType = "bridge"
	LoanTypeDSCR                 LoanType = "dscr"
	LoanTypeGroundUpConstruction LoanType = "ground_up_construction"
	LoanTypeRentalPortfolio      LoanType = "rental_portfolio"
)

// User roles.
const (
	RoleAdministrator = "Administrator"
	RoleLoanOfficer   = "Loan Officer"
	RoleProcessor     = "Processor"
	RoleUnderwriter   = "Underwriter"
	RoleCloser        = "Closer"
)

// Loan is the subset of a loan record the checklist engine needs.
// A nil LoanProduct halts materialization.
type Loan struct {
	ID              string    `json:"id" db:"id"`
	LoanNumber      string    `json:"loan_number" db:"loan_number"`
	LoanProduct     *LoanType `json:"loan_product,omitempty" db:"loan_product"`
	PropertyAddress string    `json:"property_address" db:"property_address"`
	BorrowerIDs     []string  `json:"borrower_ids" db:"-"`
	TeamMemberIDs   []string  `json:"team_member_ids" db:"-"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Borrower is a person or entity on a loan who receives LOE requests.
type Borrower struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FullName returns "First Last".
func (b Borrower) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// User is a back-office staff member from the user directory.
type User struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FullName returns "First Last", falling back to the email address.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Elevated reports whether the user may mention anyone holding the
// Loan Officer role in addition to loan team members.
func (u User) Elevated() bool {
	return u.Role == RoleAdministrator || u.Role == RoleLoanOfficer
}
