package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	projectRepo := newPgxProjectRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	fundRepo := newPgxFundRepository(dbPool, walletRepo)

	return portsrepo.RepositoryProvider{
		ProjectRepo:    projectRepo,
		WalletRepo:     walletRepo,
		PaymentRepo:    paymentRepo,
		LoanRepo:       loanRepo,
		SettlementRepo: settlementRepo,
		ExpenseRepo:    expenseRepo,
		FundRepo:       fundRepo,
	}
}
