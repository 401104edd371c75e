package repositories

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// LoanReader defines read operations for cross-project loan data. Loans are
// only created and mutated through FundRepository transactions.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its ID.
	FindLoanByID(ctx context.Context, loanID string) (*domain.CrossProjectLoan, error)

	// FindLoansByLender retrieves all loans where the project is the lender.
	FindLoansByLender(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error)

	// FindLoansByBorrower retrieves all loans where the project is the borrower.
	FindLoansByBorrower(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error)

	// FindActiveLoansByBorrower retrieves the borrower's unsettled loans in
	// FIFO order (loan date ascending, loan ID as tie-break).
	FindActiveLoansByBorrower(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error)
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
}
