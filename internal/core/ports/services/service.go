package services

// ServiceContainer bundles all services for dependency injection into the
// HTTP layer.
type ServiceContainer struct {
	Project    ProjectSvcFacade
	Wallet     WalletSvcFacade
	Allocation PaymentAllocatorSvcFacade
	Expense    CrossProjectExpenseSvcFacade
	Settlement SettlementSvcFacade
	Reporting  FundReportingSvcFacade
}
