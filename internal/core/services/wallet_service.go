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

// walletService implements the wallet store: per-project virtual balance
// records with lazy, idempotent creation.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// InitializeWallet returns the project's wallet, creating it with all
// counters at zero on first access. Concurrent calls for the same project
// resolve to the same record (uniqueness by projectID).
func (s *walletService) InitializeWallet(ctx context.Context, projectID string, userID string) (*domain.ProjectWallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if projectID == "" {
		return nil, fmt.Errorf("%w: projectID is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
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

	existing, err := s.walletRepo.InitializeWallet(ctx, wallet)
	if err != nil {
		logger.Error("Failed to initialize wallet", slog.String("project_id", projectID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to initialize wallet for project %s: %w", projectID, err)
	}
	return existing, nil
}

// GetBalance returns a snapshot of the wallet's counters and the derived net
// balance, initializing the wallet lazily like every other wallet access.
func (s *walletService) GetBalance(ctx context.Context, projectID string, userID string) (*dto.WalletBalanceResponse, error) {
	wallet, err := s.InitializeWallet(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToWalletBalanceResponse(wallet)
	return &resp, nil
}
