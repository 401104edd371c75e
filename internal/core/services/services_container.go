package services

import (
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Project:    NewProjectService(repos.ProjectRepo),
		Wallet:     NewWalletService(repos.WalletRepo),
		Allocation: NewPaymentAllocatorService(repos.PaymentRepo, repos.WalletRepo, repos.FundRepo),
		Expense:    NewCrossProjectExpenseService(repos.ExpenseRepo, repos.WalletRepo, repos.FundRepo),
		Settlement: NewSettlementService(repos.ProjectRepo, repos.LoanRepo, repos.SettlementRepo, repos.FundRepo),
		Reporting:  NewFundReportingService(repos.ProjectRepo, repos.WalletRepo, repos.PaymentRepo, repos.LoanRepo),
	}
}
