package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// settlementService retires cross-project loans, either automatically
// (oldest first, consuming an available amount) or one loan at a time.
type settlementService struct {
	projectRepo    portsrepo.ProjectRepositoryFacade
	loanRepo       portsrepo.LoanRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	fundRepo       portsrepo.FundRepository
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryFacade,
	fundRepo portsrepo.FundRepository,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		projectRepo:    projectRepo,
		loanRepo:       loanRepo,
		settlementRepo: settlementRepo,
		fundRepo:       fundRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// AutoSettleLoans consumes the available amount to retire the borrower's
// active loans in FIFO order. Each fully retired loan gets an AUTO
// settlement record; if the funds run out mid-loan, the last loan is settled
// partially (AUTO_PARTIAL) and stays active. Any surplus beyond the total
// outstanding debt is reported back unspent.
func (s *settlementService) AutoSettleLoans(ctx context.Context, borrowerProjectID string, available decimal.Decimal, userID string) (*domain.SettlementOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if borrowerProjectID == "" {
		return nil, fmt.Errorf("%w: borrowerProjectID is required", apperrors.ErrValidation)
	}
	if !available.IsPositive() {
		return nil, fmt.Errorf("%w: available amount must be positive", apperrors.ErrValidation)
	}

	outcome, err := s.fundRepo.SettleLoansFIFO(ctx, borrowerProjectID, available, userID, time.Now().UTC())
	if err != nil {
		logger.Error("Auto-settlement failed",
			slog.String("borrower_project_id", borrowerProjectID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to auto-settle loans for project %s: %w", borrowerProjectID, err)
	}

	logger.Info("Auto-settlement completed",
		slog.String("borrower_project_id", borrowerProjectID),
		slog.Int("loans_touched", len(outcome.SettledLoans)),
		slog.String("remaining_amount", outcome.RemainingAmount.String()))
	return outcome, nil
}

// SettleLoan applies a manual settlement to a single loan. The amount must
// not exceed the loan's outstanding balance; the check is repeated under the
// row lock inside the transaction, so a concurrent settlement surfaces as
// ErrConflict rather than over-settling.
func (s *settlementService) SettleLoan(ctx context.Context, loanID string, req dto.ManualSettlementRequest, userID string) (*domain.ManualSettlementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.SettlementAmount.IsPositive() {
		return nil, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanSettled {
		return nil, fmt.Errorf("%w: loan %s is already settled", apperrors.ErrValidation, loanID)
	}
	if req.SettlementAmount.GreaterThan(loan.Outstanding()) {
		return nil, fmt.Errorf("%w: settlement amount (%s) exceeds outstanding balance (%s)",
			apperrors.ErrValidation, req.SettlementAmount, loan.Outstanding())
	}

	updated, err := s.fundRepo.SettleLoan(ctx, loanID, req.SettlementAmount, domain.SettlementManual, req.Notes, userID, time.Now().UTC())
	if err != nil {
		logger.Error("Manual settlement failed", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to settle loan %s: %w", loanID, err)
	}

	logger.Info("Loan settled",
		slog.String("loan_id", loanID),
		slog.String("settlement_amount", req.SettlementAmount.String()),
		slog.Bool("fully_settled", updated.Status == domain.LoanSettled))
	return &domain.ManualSettlementResult{
		SettlementAmount: req.SettlementAmount,
		RemainingBalance: updated.Outstanding(),
		FullySettled:     updated.Status == domain.LoanSettled,
	}, nil
}

// GetLoan retrieves a loan by ID.
func (s *settlementService) GetLoan(ctx context.Context, loanID string) (*domain.CrossProjectLoan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

// ListLoansByProject returns the project's loans on both sides, including
// settled ones.
func (s *settlementService) ListLoansByProject(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, []domain.CrossProjectLoan, error) {
	given, err := s.loanRepo.FindLoansByLender(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	received, err := s.loanRepo.FindLoansByBorrower(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return given, received, nil
}

// ListSettlementsByLoan returns a loan's settlement history, oldest first.
func (s *settlementService) ListSettlementsByLoan(ctx context.Context, loanID string) ([]domain.SettlementRecord, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.settlementRepo.ListSettlementsByLoan(ctx, loanID)
}

// ListSettlementsByProject returns settlements involving the project. The
// project must exist; like ListSettlementsByLoan, an unknown ID is
// ErrNotFound rather than an empty list.
func (s *settlementService) ListSettlementsByProject(ctx context.Context, projectID string) ([]domain.SettlementRecord, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.settlementRepo.ListSettlementsByProject(ctx, projectID)
}
