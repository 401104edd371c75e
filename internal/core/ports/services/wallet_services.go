package services

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/dto"
)

// WalletSvcFacade exposes the wallet store operations.
type WalletSvcFacade interface {
	// InitializeWallet returns the project's wallet, creating it with zeroed
	// counters on first access. Idempotent.
	InitializeWallet(ctx context.Context, projectID string, userID string) (*domain.ProjectWallet, error)

	// GetBalance returns a snapshot of the wallet's counters plus the derived
	// net balance, initializing the wallet lazily if needed.
	GetBalance(ctx context.Context, projectID string, userID string) (*dto.WalletBalanceResponse, error)
}
