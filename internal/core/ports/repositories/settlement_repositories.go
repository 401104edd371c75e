package repositories

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// SettlementReader defines read operations for the settlement audit trail.
// Settlement records are append-only and only written inside FundRepository
// transactions.
type SettlementReader interface {
	// ListSettlementsByLoan retrieves the settlement history of one loan,
	// oldest first.
	ListSettlementsByLoan(ctx context.Context, loanID string) ([]domain.SettlementRecord, error)

	// ListSettlementsByProject retrieves settlements where the project is
	// lender or borrower, newest first.
	ListSettlementsByProject(ctx context.Context, projectID string) ([]domain.SettlementRecord, error)
}

// SettlementRepositoryFacade combines all settlement repository interfaces.
type SettlementRepositoryFacade interface {
	SettlementReader
}
