package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// crossProjectExpenseService records expenses funded by other projects'
// wallets. Each non-beneficiary payment source becomes a cross-project loan:
// the lender's wallet is debited and its loans-given counter credited by the
// source amount, and the borrower's loans-received counter grows by the sum
// of all borrowed amounts. The expense, the loans, and both wallet updates
// commit in one transaction.
type crossProjectExpenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	walletRepo  portsrepo.WalletRepositoryFacade
	fundRepo    portsrepo.FundRepository
}

// NewCrossProjectExpenseService creates a new CrossProjectExpenseService.
func NewCrossProjectExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	fundRepo portsrepo.FundRepository,
) portssvc.CrossProjectExpenseSvcFacade {
	return &crossProjectExpenseService{
		expenseRepo: expenseRepo,
		walletRepo:  walletRepo,
		fundRepo:    fundRepo,
	}
}

var _ portssvc.CrossProjectExpenseSvcFacade = (*crossProjectExpenseService)(nil)

func validatePaymentSources(total decimal.Decimal, sources []dto.PaymentSourceEntry) error {
	if len(sources) == 0 {
		return fmt.Errorf("%w: at least one payment source is required", apperrors.ErrValidation)
	}
	sum := decimal.Zero
	for _, src := range sources {
		if src.ProjectID == "" {
			return fmt.Errorf("%w: payment source projectID is required", apperrors.ErrValidation)
		}
		if !src.Amount.IsPositive() {
			return fmt.Errorf("%w: payment source amount for project %s must be positive", apperrors.ErrValidation, src.ProjectID)
		}
		sum = sum.Add(src.Amount)
	}
	if sum.Sub(total).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("%w: payment sources total (%s) doesn't match expense amount (%s)", apperrors.ErrValidation, sum, total)
	}
	return nil
}

// RecordCrossProjectExpense validates the source breakdown, records the
// expense against the beneficiary, and creates one loan per source project
// other than the beneficiary. Sources equal to the beneficiary are
// self-funded and create no loan.
func (s *crossProjectExpenseService) RecordCrossProjectExpense(ctx context.Context, req dto.RecordCrossProjectExpenseRequest, userID string) (*domain.Expense, []domain.CrossProjectLoan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.BeneficiaryProjectID == "" {
		return nil, nil, fmt.Errorf("%w: beneficiaryProjectID is required", apperrors.ErrValidation)
	}
	if !req.ExpenseDetails.TotalAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if err := validatePaymentSources(req.ExpenseDetails.TotalAmount, req.PaymentSources); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	projectIDs := make([]string, 0, len(req.PaymentSources)+1)
	projectIDs = append(projectIDs, req.BeneficiaryProjectID)
	for _, src := range req.PaymentSources {
		projectIDs = append(projectIDs, src.ProjectID)
	}
	if err := ensureWallets(ctx, s.walletRepo, projectIDs, userID, now); err != nil {
		logger.Error("Failed to prepare wallets for cross-project expense", slog.String("error", err.Error()))
		return nil, nil, err
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	sources := make([]domain.PaymentSource, len(req.PaymentSources))
	for i, src := range req.PaymentSources {
		sources[i] = domain.PaymentSource{ProjectID: src.ProjectID, Amount: src.Amount}
	}
	expense := domain.Expense{
		ExpenseID:           uuid.NewString(),
		ProjectID:           req.BeneficiaryProjectID,
		Description:         req.ExpenseDetails.Description,
		Category:            req.ExpenseDetails.Category,
		TotalAmount:         req.ExpenseDetails.TotalAmount,
		Date:                req.ExpenseDetails.Date,
		ExpenseType:         req.ExpenseType,
		PaidViaCrossProject: true,
		PaymentSources:      sources,
		AuditFields:         audit,
	}

	loans := make([]domain.CrossProjectLoan, 0, len(req.PaymentSources))
	deltas := make(map[string]domain.WalletDelta, len(req.PaymentSources)+1)
	for _, src := range req.PaymentSources {
		if src.ProjectID == req.BeneficiaryProjectID {
			// Self-funded portion: a normal expense, no loan and no wallet
			// movement. Wallets track payments received and loans only.
			continue
		}
		loans = append(loans, domain.CrossProjectLoan{
			LoanID:            uuid.NewString(),
			LenderProjectID:   src.ProjectID,
			BorrowerProjectID: req.BeneficiaryProjectID,
			Amount:            src.Amount,
			SettlementAmount:  decimal.Zero,
			ExpenseID:         expense.ExpenseID,
			ExpenseType:       req.ExpenseType,
			Description:       fmt.Sprintf("%s - Cross-project payment", req.ExpenseDetails.Description),
			Date:              req.ExpenseDetails.Date,
			Status:            domain.LoanActive,
			AuditFields:       audit,
		})
		deltas[src.ProjectID] = deltas[src.ProjectID].Add(domain.WalletDelta{
			VirtualBalance:  src.Amount.Neg(),
			TotalLoansGiven: src.Amount,
		})
		deltas[req.BeneficiaryProjectID] = deltas[req.BeneficiaryProjectID].Add(domain.WalletDelta{
			TotalLoansReceived: src.Amount,
		})
	}

	if err := s.fundRepo.RecordCrossProjectExpense(ctx, expense, loans, deltas); err != nil {
		logger.Error("Failed to record cross-project expense", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to record cross-project expense: %w", err)
	}

	logger.Info("Cross-project expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("beneficiary_project_id", req.BeneficiaryProjectID),
		slog.Int("loan_count", len(loans)))
	return &expense, loans, nil
}

// GetExpense retrieves an expense by ID.
func (s *crossProjectExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

// ListExpensesByProject retrieves expenses benefiting a project.
func (s *crossProjectExpenseService) ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error) {
	return s.expenseRepo.ListExpensesByProject(ctx, projectID)
}
