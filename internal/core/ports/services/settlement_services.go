package services

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/shopspring/decimal"
)

// SettlementSvcFacade exposes the settlement engine.
type SettlementSvcFacade interface {
	// AutoSettleLoans consumes the available amount to retire the borrower's
	// active loans oldest-first (FIFO). The last loan touched may be settled
	// partially; any surplus is returned unspent.
	AutoSettleLoans(ctx context.Context, borrowerProjectID string, available decimal.Decimal, userID string) (*domain.SettlementOutcome, error)

	// SettleLoan settles a single loan by the given amount. Fails with
	// ErrValidation if the amount exceeds the outstanding balance.
	SettleLoan(ctx context.Context, loanID string, req dto.ManualSettlementRequest, userID string) (*domain.ManualSettlementResult, error)

	// GetLoan retrieves a loan by ID.
	GetLoan(ctx context.Context, loanID string) (*domain.CrossProjectLoan, error)

	// ListLoansByProject returns the project's loans as lender and as
	// borrower, including settled ones.
	ListLoansByProject(ctx context.Context, projectID string) (given []domain.CrossProjectLoan, received []domain.CrossProjectLoan, err error)

	// ListSettlementsByLoan returns a loan's settlement history, oldest first.
	ListSettlementsByLoan(ctx context.Context, loanID string) ([]domain.SettlementRecord, error)

	// ListSettlementsByProject returns settlements involving the project.
	ListSettlementsByProject(ctx context.Context, projectID string) ([]domain.SettlementRecord, error)
}
