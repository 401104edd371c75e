package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines lifecycle operations for database transactions.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	ProjectRepo    ProjectRepositoryFacade
	WalletRepo     WalletRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	LoanRepo       LoanRepositoryFacade
	SettlementRepo SettlementRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	FundRepo       FundRepository
}
