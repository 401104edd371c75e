package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/core/services"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
)

type CrossProjectExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockWalletRepo  *MockWalletRepository
	mockFundRepo    *MockFundRepository
	service         portssvc.CrossProjectExpenseSvcFacade
}

func (suite *CrossProjectExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockFundRepo = new(MockFundRepository)
	suite.service = services.NewCrossProjectExpenseService(suite.mockExpenseRepo, suite.mockWalletRepo, suite.mockFundRepo)
}

func (suite *CrossProjectExpenseServiceTestSuite) expectWalletInit() {
	suite.mockWalletRepo.On("InitializeWallet", mock.Anything, mock.AnythingOfType("domain.ProjectWallet")).
		Return(&domain.ProjectWallet{}, nil)
}

func (suite *CrossProjectExpenseServiceTestSuite) TestRecordCrossProjectExpense_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	beneficiary := uuid.NewString()
	lenderA := uuid.NewString()
	lenderB := uuid.NewString()

	req := dto.RecordCrossProjectExpenseRequest{
		BeneficiaryProjectID: beneficiary,
		ExpenseType:          domain.ExpenseMaterial,
		ExpenseDetails: dto.ExpenseDetails{
			Description: "Steel delivery",
			Category:    "materials",
			TotalAmount: decimal.NewFromInt(20000),
			Date:        time.Now().UTC(),
		},
		PaymentSources: []dto.PaymentSourceEntry{
			{ProjectID: lenderA, Amount: decimal.NewFromInt(12000)},
			{ProjectID: lenderB, Amount: decimal.NewFromInt(8000)},
		},
	}

	suite.expectWalletInit()
	suite.mockFundRepo.On("RecordCrossProjectExpense", ctx,
		mock.AnythingOfType("domain.Expense"),
		mock.MatchedBy(func(loans []domain.CrossProjectLoan) bool {
			return len(loans) == 2 &&
				loans[0].LenderProjectID == lenderA &&
				loans[0].BorrowerProjectID == beneficiary &&
				loans[0].Amount.Equal(decimal.NewFromInt(12000)) &&
				loans[0].Status == domain.LoanActive &&
				loans[1].LenderProjectID == lenderB &&
				loans[1].Amount.Equal(decimal.NewFromInt(8000))
		}),
		mock.MatchedBy(func(deltas map[string]domain.WalletDelta) bool {
			// Lenders pay out and track loans given; the beneficiary only
			// accrues loans received.
			return deltas[lenderA].VirtualBalance.Equal(decimal.NewFromInt(-12000)) &&
				deltas[lenderA].TotalLoansGiven.Equal(decimal.NewFromInt(12000)) &&
				deltas[lenderB].VirtualBalance.Equal(decimal.NewFromInt(-8000)) &&
				deltas[lenderB].TotalLoansGiven.Equal(decimal.NewFromInt(8000)) &&
				deltas[beneficiary].TotalLoansReceived.Equal(decimal.NewFromInt(20000)) &&
				deltas[beneficiary].VirtualBalance.IsZero()
		}),
	).Return(nil).Once()

	expense, loans, err := suite.service.RecordCrossProjectExpense(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(beneficiary, expense.ProjectID)
	suite.True(expense.PaidViaCrossProject)
	suite.Len(loans, 2)
	suite.Equal("Steel delivery - Cross-project payment", loans[0].Description)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *CrossProjectExpenseServiceTestSuite) TestRecordCrossProjectExpense_SelfFundedSourceSkipped() {
	ctx := context.Background()
	beneficiary := uuid.NewString()
	lender := uuid.NewString()

	req := dto.RecordCrossProjectExpenseRequest{
		BeneficiaryProjectID: beneficiary,
		ExpenseType:          domain.ExpenseLabour,
		ExpenseDetails: dto.ExpenseDetails{
			Description: "Crew wages",
			TotalAmount: decimal.NewFromInt(30000),
			Date:        time.Now().UTC(),
		},
		PaymentSources: []dto.PaymentSourceEntry{
			{ProjectID: beneficiary, Amount: decimal.NewFromInt(10000)},
			{ProjectID: lender, Amount: decimal.NewFromInt(20000)},
		},
	}

	suite.expectWalletInit()
	suite.mockFundRepo.On("RecordCrossProjectExpense", ctx,
		mock.AnythingOfType("domain.Expense"),
		mock.MatchedBy(func(loans []domain.CrossProjectLoan) bool {
			// The self-funded portion creates no loan.
			return len(loans) == 1 && loans[0].LenderProjectID == lender &&
				loans[0].Amount.Equal(decimal.NewFromInt(20000))
		}),
		mock.MatchedBy(func(deltas map[string]domain.WalletDelta) bool {
			_, beneficiaryDebited := deltas[beneficiary]
			return deltas[lender].VirtualBalance.Equal(decimal.NewFromInt(-20000)) &&
				(!beneficiaryDebited || deltas[beneficiary].VirtualBalance.IsZero())
		}),
	).Return(nil).Once()

	_, loans, err := suite.service.RecordCrossProjectExpense(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Len(loans, 1)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *CrossProjectExpenseServiceTestSuite) TestRecordCrossProjectExpense_SourcesMismatch() {
	ctx := context.Background()

	req := dto.RecordCrossProjectExpenseRequest{
		BeneficiaryProjectID: uuid.NewString(),
		ExpenseType:          domain.ExpenseGeneral,
		ExpenseDetails: dto.ExpenseDetails{
			Description: "Site office rent",
			TotalAmount: decimal.NewFromInt(10000),
			Date:        time.Now().UTC(),
		},
		PaymentSources: []dto.PaymentSourceEntry{
			{ProjectID: uuid.NewString(), Amount: decimal.NewFromInt(9000)},
		},
	}

	_, _, err := suite.service.RecordCrossProjectExpense(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "RecordCrossProjectExpense",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CrossProjectExpenseServiceTestSuite) TestRecordCrossProjectExpense_MissingBeneficiary() {
	ctx := context.Background()

	req := dto.RecordCrossProjectExpenseRequest{
		ExpenseType: domain.ExpenseMaterial,
		ExpenseDetails: dto.ExpenseDetails{
			Description: "Cement",
			TotalAmount: decimal.NewFromInt(5000),
			Date:        time.Now().UTC(),
		},
		PaymentSources: []dto.PaymentSourceEntry{
			{ProjectID: uuid.NewString(), Amount: decimal.NewFromInt(5000)},
		},
	}

	_, _, err := suite.service.RecordCrossProjectExpense(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CrossProjectExpenseServiceTestSuite) TestGetExpense_NotFound() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetExpense(ctx, expenseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCrossProjectExpenseService(t *testing.T) {
	suite.Run(t, new(CrossProjectExpenseServiceTestSuite))
}
