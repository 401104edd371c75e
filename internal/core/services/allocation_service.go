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

// allocationTolerance absorbs sub-paisa rounding in client-supplied
// breakdowns. Persisted amounts are exact decimals; the tolerance applies
// only when comparing a breakdown's sum to its declared total.
var allocationTolerance = decimal.NewFromFloat(0.01)

// paymentAllocatorService splits client payments across project wallets.
// Every wallet-affecting mutation goes through FundRepository so the payment
// record, its allocations, and the wallet credits commit atomically.
type paymentAllocatorService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	walletRepo  portsrepo.WalletRepositoryFacade
	fundRepo    portsrepo.FundRepository
}

// NewPaymentAllocatorService creates a new PaymentAllocatorService.
func NewPaymentAllocatorService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	fundRepo portsrepo.FundRepository,
) portssvc.PaymentAllocatorSvcFacade {
	return &paymentAllocatorService{
		paymentRepo: paymentRepo,
		walletRepo:  walletRepo,
		fundRepo:    fundRepo,
	}
}

var _ portssvc.PaymentAllocatorSvcFacade = (*paymentAllocatorService)(nil)

// validateAllocationEntries checks that every entry is positive and that the
// entries sum to the declared total within allocationTolerance.
func validateAllocationEntries(total decimal.Decimal, entries []dto.AllocationEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: at least one allocation is required", apperrors.ErrValidation)
	}
	sum := decimal.Zero
	for _, e := range entries {
		if e.ProjectID == "" {
			return fmt.Errorf("%w: allocation projectID is required", apperrors.ErrValidation)
		}
		if !e.Amount.IsPositive() {
			return fmt.Errorf("%w: allocation amount for project %s must be positive", apperrors.ErrValidation, e.ProjectID)
		}
		sum = sum.Add(e.Amount)
	}
	if sum.Sub(total).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("%w: total allocated (%s) doesn't match payment amount (%s)", apperrors.ErrValidation, sum, total)
	}
	return nil
}

// ensureWallets lazily creates wallets for every named project, so the
// transactional delta application always finds its rows. Duplicate project
// IDs are initialized once.
func ensureWallets(ctx context.Context, walletRepo portsrepo.WalletWriter, projectIDs []string, userID string, now time.Time) error {
	seen := make(map[string]struct{}, len(projectIDs))
	for _, projectID := range projectIDs {
		if _, ok := seen[projectID]; ok {
			continue
		}
		seen[projectID] = struct{}{}
		wallet := domain.ProjectWallet{
			WalletID:           uuid.NewString(),
			ProjectID:          projectID,
			VirtualBalance:     decimal.Zero,
			AdvanceReceived:    decimal.Zero,
			PendingDues:        decimal.Zero,
			TotalLoansGiven:    decimal.Zero,
			TotalLoansReceived: decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if _, err := walletRepo.InitializeWallet(ctx, wallet); err != nil {
			return fmt.Errorf("failed to initialize wallet for project %s: %w", projectID, err)
		}
	}
	return nil
}

// AllocatePayment records a new client payment and splits it across project
// wallets in one transaction.
func (s *paymentAllocatorService) AllocatePayment(ctx context.Context, req dto.AllocatePaymentRequest, userID string) (*domain.ClientPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if err := validateAllocationEntries(req.TotalAmount, req.Allocations); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	projectIDs := make([]string, 0, len(req.Allocations))
	for _, e := range req.Allocations {
		projectIDs = append(projectIDs, e.ProjectID)
	}
	if err := ensureWallets(ctx, s.walletRepo, projectIDs, userID, now); err != nil {
		logger.Error("Failed to prepare wallets for payment allocation", slog.String("error", err.Error()))
		return nil, err
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	allocationDate := now
	payment := domain.ClientPayment{
		PaymentID:      uuid.NewString(),
		ProjectID:      domain.MultiProjectMarker,
		Amount:         req.TotalAmount,
		PaymentDate:    req.PaymentDate,
		From:           req.From,
		ReceivedBy:     req.ReceivedBy,
		Method:         req.Method,
		Notes:          req.Notes,
		IsMultiProject: true,
		IsAllocated:    true,
		AllocationDate: &allocationDate,
		AuditFields:    audit,
	}

	allocations := make([]domain.PaymentAllocation, 0, len(req.Allocations))
	deltas := make(map[string]domain.WalletDelta, len(req.Allocations))
	for _, e := range req.Allocations {
		description := e.Description
		if description == "" {
			description = "Client payment allocation"
		}
		allocations = append(allocations, domain.PaymentAllocation{
			AllocationID: uuid.NewString(),
			PaymentID:    payment.PaymentID,
			ProjectID:    e.ProjectID,
			Amount:       e.Amount,
			Description:  description,
			Date:         req.PaymentDate,
			AuditFields:  audit,
		})
		deltas[e.ProjectID] = deltas[e.ProjectID].Add(domain.WalletDelta{
			VirtualBalance:  e.Amount,
			AdvanceReceived: e.Amount,
		})
	}

	if err := s.fundRepo.AllocatePayment(ctx, payment, allocations, deltas); err != nil {
		logger.Error("Failed to allocate payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to allocate payment: %w", err)
	}

	logger.Info("Payment allocated",
		slog.String("payment_id", payment.PaymentID),
		slog.String("total_amount", payment.Amount.String()),
		slog.Int("allocation_count", len(allocations)))
	return &payment, nil
}

// AllocateExistingPayment splits a previously recorded payment across project
// wallets and marks it allocated. A payment can be allocated only once.
func (s *paymentAllocatorService) AllocateExistingPayment(ctx context.Context, paymentID string, req dto.AllocateExistingPaymentRequest, userID string) (*domain.ClientPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.IsAllocated {
		return nil, fmt.Errorf("%w: payment %s has already been allocated", apperrors.ErrConflict, paymentID)
	}
	if err := validateAllocationEntries(payment.Amount, req.Allocations); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	projectIDs := make([]string, 0, len(req.Allocations))
	for _, e := range req.Allocations {
		projectIDs = append(projectIDs, e.ProjectID)
	}
	if err := ensureWallets(ctx, s.walletRepo, projectIDs, userID, now); err != nil {
		logger.Error("Failed to prepare wallets for payment allocation", slog.String("error", err.Error()))
		return nil, err
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	allocations := make([]domain.PaymentAllocation, 0, len(req.Allocations))
	deltas := make(map[string]domain.WalletDelta, len(req.Allocations))
	for _, e := range req.Allocations {
		description := e.Description
		if description == "" {
			description = fmt.Sprintf("Allocation from payment %s", paymentID)
		}
		allocations = append(allocations, domain.PaymentAllocation{
			AllocationID: uuid.NewString(),
			PaymentID:    paymentID,
			ProjectID:    e.ProjectID,
			Amount:       e.Amount,
			Description:  description,
			Date:         payment.PaymentDate,
			AuditFields:  audit,
		})
		deltas[e.ProjectID] = deltas[e.ProjectID].Add(domain.WalletDelta{
			VirtualBalance:  e.Amount,
			AdvanceReceived: e.Amount,
		})
	}

	if err := s.fundRepo.MarkPaymentAllocated(ctx, paymentID, allocations, deltas, req.Notes, userID, now); err != nil {
		logger.Error("Failed to allocate existing payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to allocate payment %s: %w", paymentID, err)
	}

	logger.Info("Existing payment allocated",
		slog.String("payment_id", paymentID),
		slog.Int("allocation_count", len(allocations)))
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// DeletePayment removes a payment and, if it was allocated, reverses each
// allocation's wallet credit in the same transaction.
func (s *paymentAllocatorService) DeletePayment(ctx context.Context, paymentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.fundRepo.DeletePaymentWithAllocations(ctx, paymentID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// GetPayment retrieves a payment with its allocation rows.
func (s *paymentAllocatorService) GetPayment(ctx context.Context, paymentID string) (*domain.ClientPayment, []domain.PaymentAllocation, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	allocations, err := s.paymentRepo.FindAllocationsByPayment(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	return payment, allocations, nil
}
