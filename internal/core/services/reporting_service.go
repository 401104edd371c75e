package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/middleware"
)

// fundReportingService aggregates wallet, loan, and allocation data into
// per-project summaries and the fleet-wide fund status.
type fundReportingService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
	walletRepo  portsrepo.WalletRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	loanRepo    portsrepo.LoanRepositoryFacade
}

// NewFundReportingService creates a new FundReportingService.
func NewFundReportingService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
) portssvc.FundReportingSvcFacade {
	return &fundReportingService{
		projectRepo: projectRepo,
		walletRepo:  walletRepo,
		paymentRepo: paymentRepo,
		loanRepo:    loanRepo,
	}
}

var _ portssvc.FundReportingSvcFacade = (*fundReportingService)(nil)

// GetProjectFinancialSummary builds a project's fund summary. A project that
// has never touched the ledger reports all-zero figures rather than an error.
func (s *fundReportingService) GetProjectFinancialSummary(ctx context.Context, projectID string) (*domain.ProjectFinancialSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if projectID == "" {
		return nil, fmt.Errorf("%w: projectID is required", apperrors.ErrValidation)
	}

	summary := &domain.ProjectFinancialSummary{
		ProjectID:             projectID,
		VirtualBalance:        decimal.Zero,
		AdvanceReceived:       decimal.Zero,
		PendingDues:           decimal.Zero,
		ActiveLoansGiven:      decimal.Zero,
		ActiveLoansReceived:   decimal.Zero,
		NetAvailableBalance:   decimal.Zero,
		TotalPaymentsReceived: decimal.Zero,
		LoansGiven:            []domain.CrossProjectLoan{},
		LoansReceived:         []domain.CrossProjectLoan{},
	}

	wallet, err := s.walletRepo.FindWalletByProject(ctx, projectID)
	if err != nil && !apperrors.IsNotFound(err) {
		logger.Error("Failed to load wallet for summary", slog.String("project_id", projectID), slog.String("error", err.Error()))
		return nil, err
	}
	if wallet != nil {
		summary.VirtualBalance = wallet.VirtualBalance
		summary.AdvanceReceived = wallet.AdvanceReceived
		summary.PendingDues = wallet.PendingDues
	}

	loansGiven, err := s.loanRepo.FindLoansByLender(ctx, projectID)
	if err != nil {
		return nil, err
	}
	loansReceived, err := s.loanRepo.FindLoansByBorrower(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, loan := range loansGiven {
		if loan.Status != domain.LoanActive {
			continue
		}
		summary.ActiveLoansGiven = summary.ActiveLoansGiven.Add(loan.Outstanding())
		summary.LoansGiven = append(summary.LoansGiven, loan)
	}
	for _, loan := range loansReceived {
		if loan.Status != domain.LoanActive {
			continue
		}
		summary.ActiveLoansReceived = summary.ActiveLoansReceived.Add(loan.Outstanding())
		summary.LoansReceived = append(summary.LoansReceived, loan)
	}

	allocations, err := s.paymentRepo.FindAllocationsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, a := range allocations {
		summary.TotalPaymentsReceived = summary.TotalPaymentsReceived.Add(a.Amount)
	}

	// Money lent out is still this project's asset; money borrowed is owed.
	summary.NetAvailableBalance = summary.VirtualBalance.Sub(summary.ActiveLoansReceived)
	return summary, nil
}

// GetOverallFundStatus aggregates every project's summary and verifies that
// outstanding loans given and received balance across the whole fund.
func (s *fundReportingService) GetOverallFundStatus(ctx context.Context) (*domain.OverallFundStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		logger.Error("Failed to list projects for fund status", slog.String("error", err.Error()))
		return nil, err
	}

	status := &domain.OverallFundStatus{
		TotalVirtualBalance: decimal.Zero,
		TotalActiveLoans:    decimal.Zero,
		NetBankBalance:      decimal.Zero,
		Projects:            make([]domain.ProjectFundOverview, 0, len(projects)),
	}

	totalGiven := decimal.Zero
	totalReceived := decimal.Zero
	for _, project := range projects {
		summary, err := s.GetProjectFinancialSummary(ctx, project.ProjectID)
		if err != nil {
			return nil, err
		}
		status.Projects = append(status.Projects, domain.ProjectFundOverview{
			ProjectName:             project.Name,
			ProjectFinancialSummary: *summary,
		})
		status.TotalVirtualBalance = status.TotalVirtualBalance.Add(summary.VirtualBalance)
		totalGiven = totalGiven.Add(summary.ActiveLoansGiven)
		totalReceived = totalReceived.Add(summary.ActiveLoansReceived)
	}

	status.TotalActiveLoans = totalGiven
	// Bank money doesn't move when projects lend to each other, so the net
	// bank balance is just the sum of virtual balances.
	status.NetBankBalance = status.TotalVirtualBalance
	status.IsBalanced = totalGiven.Sub(totalReceived).Abs().LessThan(allocationTolerance)
	return status, nil
}
