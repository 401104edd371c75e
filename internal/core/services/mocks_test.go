package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// MockProjectRepository is a mock type for the ProjectRepositoryFacade interface
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// MockWalletRepository is a mock type for the WalletRepositoryFacade interface
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByProject(ctx context.Context, projectID string) (*domain.ProjectWallet, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectWallet), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context) ([]domain.ProjectWallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectWallet), args.Error(1)
}

func (m *MockWalletRepository) InitializeWallet(ctx context.Context, wallet domain.ProjectWallet) (*domain.ProjectWallet, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectWallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyWalletDeltas(ctx context.Context, deltas map[string]domain.WalletDelta, userID string, now time.Time) error {
	args := m.Called(ctx, deltas, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletsByProjectIDsForUpdate(ctx context.Context, tx pgx.Tx, projectIDs []string) (map[string]domain.ProjectWallet, error) {
	args := m.Called(ctx, tx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ProjectWallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyWalletDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]domain.WalletDelta, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.ClientPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByProject(ctx context.Context, projectID string) ([]domain.ClientPayment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientPayment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.ClientPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

func (m *MockPaymentRepository) FindAllocationsByProject(ctx context.Context, projectID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

// MockLoanRepository is a mock type for the LoanRepositoryFacade interface
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.CrossProjectLoan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrossProjectLoan), args.Error(1)
}

func (m *MockLoanRepository) FindLoansByLender(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CrossProjectLoan), args.Error(1)
}

func (m *MockLoanRepository) FindLoansByBorrower(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CrossProjectLoan), args.Error(1)
}

func (m *MockLoanRepository) FindActiveLoansByBorrower(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CrossProjectLoan), args.Error(1)
}

// MockSettlementRepository is a mock type for the SettlementRepositoryFacade interface
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) ListSettlementsByLoan(ctx context.Context, loanID string) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByProject(ctx context.Context, projectID string) ([]domain.SettlementRecord, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementRecord), args.Error(1)
}

// MockExpenseRepository is a mock type for the ExpenseRepositoryFacade interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// MockFundRepository is a mock type for the FundRepository interface
type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) AllocatePayment(ctx context.Context, payment domain.ClientPayment, allocations []domain.PaymentAllocation, deltas map[string]domain.WalletDelta) error {
	args := m.Called(ctx, payment, allocations, deltas)
	return args.Error(0)
}

func (m *MockFundRepository) MarkPaymentAllocated(ctx context.Context, paymentID string, allocations []domain.PaymentAllocation, deltas map[string]domain.WalletDelta, allocationNotes string, userID string, now time.Time) error {
	args := m.Called(ctx, paymentID, allocations, deltas, allocationNotes, userID, now)
	return args.Error(0)
}

func (m *MockFundRepository) DeletePaymentWithAllocations(ctx context.Context, paymentID string, userID string, now time.Time) error {
	args := m.Called(ctx, paymentID, userID, now)
	return args.Error(0)
}

func (m *MockFundRepository) RecordCrossProjectExpense(ctx context.Context, expense domain.Expense, loans []domain.CrossProjectLoan, deltas map[string]domain.WalletDelta) error {
	args := m.Called(ctx, expense, loans, deltas)
	return args.Error(0)
}

func (m *MockFundRepository) SettleLoansFIFO(ctx context.Context, borrowerProjectID string, available decimal.Decimal, userID string, now time.Time) (*domain.SettlementOutcome, error) {
	args := m.Called(ctx, borrowerProjectID, available, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementOutcome), args.Error(1)
}

func (m *MockFundRepository) SettleLoan(ctx context.Context, loanID string, amount decimal.Decimal, settlementType domain.SettlementType, notes string, userID string, now time.Time) (*domain.CrossProjectLoan, error) {
	args := m.Called(ctx, loanID, amount, settlementType, notes, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrossProjectLoan), args.Error(1)
}
