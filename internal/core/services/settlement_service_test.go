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

type SettlementServiceTestSuite struct {
	suite.Suite
	mockProjectRepo    *MockProjectRepository
	mockLoanRepo       *MockLoanRepository
	mockSettlementRepo *MockSettlementRepository
	mockFundRepo       *MockFundRepository
	service            portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockFundRepo = new(MockFundRepository)
	suite.service = services.NewSettlementService(suite.mockProjectRepo, suite.mockLoanRepo, suite.mockSettlementRepo, suite.mockFundRepo)
}

func activeLoan(lenderID, borrowerID string, amount, settled int64) *domain.CrossProjectLoan {
	return &domain.CrossProjectLoan{
		LoanID:            uuid.NewString(),
		LenderProjectID:   lenderID,
		BorrowerProjectID: borrowerID,
		Amount:            decimal.NewFromInt(amount),
		SettlementAmount:  decimal.NewFromInt(settled),
		Status:            domain.LoanActive,
		Date:              time.Now().UTC(),
	}
}

// The FIFO planning itself (order, full-vs-partial split, surplus) is
// covered by the PlanFIFOSettlement tests in the domain package; here we
// only care that the service validates and delegates.
func (suite *SettlementServiceTestSuite) TestAutoSettleLoans_Delegates() {
	ctx := context.Background()
	userID := uuid.NewString()
	borrower := uuid.NewString()

	outcome := &domain.SettlementOutcome{
		SettledLoans:    []domain.SettledLoan{},
		RemainingAmount: decimal.NewFromInt(10000),
	}
	suite.mockFundRepo.On("SettleLoansFIFO", ctx, borrower, decimal.NewFromInt(10000), userID, mock.AnythingOfType("time.Time")).
		Return(outcome, nil).Once()

	result, err := suite.service.AutoSettleLoans(ctx, borrower, decimal.NewFromInt(10000), userID)

	suite.Require().NoError(err)
	suite.Same(outcome, result)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestAutoSettleLoans_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.AutoSettleLoans(ctx, uuid.NewString(), decimal.Zero, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SettleLoansFIFO",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestAutoSettleLoans_MissingProject() {
	ctx := context.Background()

	_, err := suite.service.AutoSettleLoans(ctx, "", decimal.NewFromInt(1000), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettleLoan_PartialSuccess() {
	ctx := context.Background()
	userID := uuid.NewString()
	loan := activeLoan(uuid.NewString(), uuid.NewString(), 20000, 0)

	updated := *loan
	updated.SettlementAmount = decimal.NewFromInt(15000)
	lastSettlement := time.Now().UTC()
	updated.LastSettlementDate = &lastSettlement

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockFundRepo.On("SettleLoan", ctx, loan.LoanID, decimal.NewFromInt(15000),
		domain.SettlementManual, "partial payback", userID, mock.AnythingOfType("time.Time")).
		Return(&updated, nil).Once()

	result, err := suite.service.SettleLoan(ctx, loan.LoanID, dto.ManualSettlementRequest{
		SettlementAmount: decimal.NewFromInt(15000),
		Notes:            "partial payback",
	}, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.SettlementAmount.Equal(decimal.NewFromInt(15000)))
	suite.True(result.RemainingBalance.Equal(decimal.NewFromInt(5000)))
	suite.False(result.FullySettled)
	suite.mockFundRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleLoan_FullSettlement() {
	ctx := context.Background()
	userID := uuid.NewString()
	loan := activeLoan(uuid.NewString(), uuid.NewString(), 20000, 15000)

	updated := *loan
	updated.SettlementAmount = decimal.NewFromInt(20000)
	updated.Status = domain.LoanSettled
	settledAt := time.Now().UTC()
	updated.SettledDate = &settledAt

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockFundRepo.On("SettleLoan", ctx, loan.LoanID, decimal.NewFromInt(5000),
		domain.SettlementManual, "", userID, mock.AnythingOfType("time.Time")).
		Return(&updated, nil).Once()

	result, err := suite.service.SettleLoan(ctx, loan.LoanID, dto.ManualSettlementRequest{
		SettlementAmount: decimal.NewFromInt(5000),
	}, userID)

	suite.Require().NoError(err)
	suite.True(result.FullySettled)
	suite.True(result.RemainingBalance.IsZero())
}

func (suite *SettlementServiceTestSuite) TestSettleLoan_AlreadySettled() {
	ctx := context.Background()
	loan := activeLoan(uuid.NewString(), uuid.NewString(), 20000, 20000)
	loan.Status = domain.LoanSettled

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	_, err := suite.service.SettleLoan(ctx, loan.LoanID, dto.ManualSettlementRequest{
		SettlementAmount: decimal.NewFromInt(1000),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFundRepo.AssertNotCalled(suite.T(), "SettleLoan",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleLoan_ExceedsOutstanding() {
	ctx := context.Background()
	loan := activeLoan(uuid.NewString(), uuid.NewString(), 20000, 15000)

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	_, err := suite.service.SettleLoan(ctx, loan.LoanID, dto.ManualSettlementRequest{
		SettlementAmount: decimal.NewFromInt(6000),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettleLoan_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.SettleLoan(ctx, uuid.NewString(), dto.ManualSettlementRequest{
		SettlementAmount: decimal.NewFromInt(-100),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "FindLoanByID", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestListLoansByProject() {
	ctx := context.Background()
	projectID := uuid.NewString()

	given := []domain.CrossProjectLoan{*activeLoan(projectID, uuid.NewString(), 5000, 0)}
	received := []domain.CrossProjectLoan{*activeLoan(uuid.NewString(), projectID, 3000, 0)}

	suite.mockLoanRepo.On("FindLoansByLender", ctx, projectID).Return(given, nil).Once()
	suite.mockLoanRepo.On("FindLoansByBorrower", ctx, projectID).Return(received, nil).Once()

	gotGiven, gotReceived, err := suite.service.ListLoansByProject(ctx, projectID)

	suite.Require().NoError(err)
	suite.Len(gotGiven, 1)
	suite.Len(gotReceived, 1)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestListSettlementsByLoan_LoanMissing() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListSettlementsByLoan(ctx, loanID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "ListSettlementsByLoan", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestListSettlementsByProject_Success() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).
		Return(&domain.Project{ProjectID: projectID, Name: "Harbor Extension"}, nil).Once()
	records := []domain.SettlementRecord{
		{SettlementID: uuid.NewString(), LenderProjectID: projectID, Amount: decimal.NewFromInt(5000), SettlementType: domain.SettlementAuto},
	}
	suite.mockSettlementRepo.On("ListSettlementsByProject", ctx, projectID).Return(records, nil).Once()

	got, err := suite.service.ListSettlementsByProject(ctx, projectID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockProjectRepo.AssertExpectations(suite.T())
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

// An unknown project is a not-found error, same as an unknown loan on the
// per-loan listing, never an empty list.
func (suite *SettlementServiceTestSuite) TestListSettlementsByProject_ProjectMissing() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListSettlementsByProject(ctx, projectID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "ListSettlementsByProject", mock.Anything, mock.Anything)
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
