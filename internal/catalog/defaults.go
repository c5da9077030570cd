package catalog

import "github.com/nhle/loan-checklist/internal/model"

// Action item categories in display order.
const (
	CategoryApplication  = "Application"
	CategoryProcessing   = "Processing"
	CategoryUnderwriting = "Underwriting"
	CategoryClosing      = "Closing"
	CategoryPostClosing  = "Post-Closing"
)

// Document categories in display order.
const (
	CategoryBorrowerDocument    = "Borrower Document"
	CategoryPropertyDocument    = "Property Document"
	CategoryClosingDocument     = "Closing Document"
	CategoryPostClosingDocument = "Post-Closing Document"
)

var (
	rehabProducts  = []model.LoanType{model.LoanTypeFixAndFlip, model.LoanTypeGroundUpConstruction}
	rentalProducts = []model.LoanType{model.LoanTypeDSCR, model.LoanTypeRentalPortfolio}
)

var defaultActionItems = []Entry{
	{Category: CategoryApplication, ItemName: "Review Loan Application", Description: "Confirm the application is complete and signed."},
	{Category: CategoryApplication, ItemName: "Pull Credit Report", Description: "Tri-merge credit for every guarantor.", Provider: "Credit Vendor"},
	{Category: CategoryApplication, ItemName: "Run Background Check", Description: "Background and OFAC search on borrowers and guarantors.", Provider: "Background Vendor"},
	{Category: CategoryProcessing, ItemName: "Order Appraisal", Provider: "Appraisal Management Company"},
	{Category: CategoryProcessing, ItemName: "Order Title Commitment", Provider: "Title Company"},
	{Category: CategoryProcessing, ItemName: "Verify Insurance Coverage", Description: "Hazard and liability with lender listed as mortgagee."},
	{Category: CategoryProcessing, ItemName: "Order Feasibility Review", Provider: "Construction Consultant", ApplicableLoanTypes: []model.LoanType{model.LoanTypeGroundUpConstruction}},
	{Category: CategoryProcessing, ItemName: "Review Rent Roll", ApplicableLoanTypes: rentalProducts},
	{Category: CategoryUnderwriting, ItemName: "Review Scope of Work", ApplicableLoanTypes: rehabProducts},
	{Category: CategoryUnderwriting, ItemName: "Calculate DSCR", Description: "Debt service coverage from in-place or market rents.", ApplicableLoanTypes: rentalProducts},
	{Category: CategoryUnderwriting, ItemName: "Complete Underwriting Review"},
	{Category: CategoryUnderwriting, ItemName: "Issue Conditional Approval"},
	{Category: CategoryClosing, ItemName: "Prepare Closing Documents"},
	{Category: CategoryClosing, ItemName: "Confirm Wire Instructions", Description: "Verbally verify wire instructions with the title company."},
	{Category: CategoryClosing, ItemName: "Schedule Closing"},
	{Category: CategoryPostClosing, ItemName: "Record Deed of Trust", Provider: "Title Company"},
	{Category: CategoryPostClosing, ItemName: "Board Loan with Servicer"},
}

var defaultDocuments = []Entry{
	{Category: CategoryBorrowerDocument, ItemName: "Government-Issued ID", DocumentCategory: string(model.DocumentCategoryBorrower)},
	{Category: CategoryBorrowerDocument, ItemName: "Bank Statements (2 Months)", DocumentCategory: string(model.DocumentCategoryBorrower)},
	{Category: CategoryBorrowerDocument, ItemName: "Entity Formation Documents", DocumentCategory: string(model.DocumentCategoryBorrower)},
	{Category: CategoryBorrowerDocument, ItemName: "Operating Agreement", DocumentCategory: string(model.DocumentCategoryBorrower)},
	{Category: CategoryBorrowerDocument, ItemName: "Certificate of Good Standing", DocumentCategory: string(model.DocumentCategoryBorrower)},
	{Category: CategoryBorrowerDocument, ItemName: "Real Estate Owned Schedule", Description: "Track record of completed projects.", DocumentCategory: string(model.DocumentCategoryBorrower)},
	{Category: CategoryPropertyDocument, ItemName: "Purchase Contract", DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Appraisal Report", Provider: "Appraisal Management Company", DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Title Commitment", Provider: "Title Company", DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Evidence of Insurance", DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Rehab Budget", ApplicableLoanTypes: []model.LoanType{model.LoanTypeFixAndFlip}, DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Construction Plans and Permits", ApplicableLoanTypes: []model.LoanType{model.LoanTypeGroundUpConstruction}, DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Lease Agreements", ApplicableLoanTypes: rentalProducts, DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryPropertyDocument, ItemName: "Rent Roll", ApplicableLoanTypes: rentalProducts, DocumentCategory: string(model.DocumentCategoryProperty)},
	{Category: CategoryClosingDocument, ItemName: "Signed Promissory Note", DocumentCategory: string(model.DocumentCategoryClosing)},
	{Category: CategoryClosingDocument, ItemName: "Signed Deed of Trust", DocumentCategory: string(model.DocumentCategoryClosing)},
	{Category: CategoryClosingDocument, ItemName: "Settlement Statement", DocumentCategory: string(model.DocumentCategoryClosing)},
	{Category: CategoryPostClosingDocument, ItemName: "Recorded Deed of Trust", DocumentCategory: string(model.DocumentCategoryPostClosing)},
	{Category: CategoryPostClosingDocument, ItemName: "Final Title Policy", DocumentCategory: string(model.DocumentCategoryPostClosing)},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(
		defaultActionItems,
		defaultDocuments,
		[]string{CategoryApplication, CategoryProcessing, CategoryUnderwriting, CategoryClosing, CategoryPostClosing},
		[]string{CategoryBorrowerDocument, CategoryPropertyDocument, CategoryClosingDocument, CategoryPostClosingDocument},
	)
	if err != nil {
		panic("catalog: invalid built-in templates: " + err.Error())
	}
	return c
}
