package repositories

import (
	"context"
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WalletReader defines read operations for project wallet data.
type WalletReader interface {
	// FindWalletByProject retrieves the wallet for a project, or ErrNotFound.
	FindWalletByProject(ctx context.Context, projectID string) (*domain.ProjectWallet, error)

	// ListWallets retrieves every project wallet.
	ListWallets(ctx context.Context) ([]domain.ProjectWallet, error)
}

// WalletWriter defines write operations for project wallet data.
type WalletWriter interface {
	// InitializeWallet creates the wallet for a project if it does not exist
	// and returns the current record. Idempotent under concurrent calls:
	// uniqueness on project_id guarantees a single wallet per project.
	InitializeWallet(ctx context.Context, wallet domain.ProjectWallet) (*domain.ProjectWallet, error)

	// ApplyWalletDeltas applies counter increments to the named wallets as a
	// single transaction.
	ApplyWalletDeltas(ctx context.Context, deltas map[string]domain.WalletDelta, userID string, now time.Time) error
}

// WalletTransactionSupport defines wallet operations usable inside a
// caller-owned database transaction.
type WalletTransactionSupport interface {
	// FindWalletsByProjectIDsForUpdate selects wallets and locks their rows
	// for update. ProjectIDs must be locked in a consistent (sorted) order by
	// the caller to avoid deadlocks between concurrent operations.
	FindWalletsByProjectIDsForUpdate(ctx context.Context, tx pgx.Tx, projectIDs []string) (map[string]domain.ProjectWallet, error)

	// ApplyWalletDeltasInTx applies counter increments to the named wallets
	// within the given transaction, stamping last_updated.
	ApplyWalletDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]domain.WalletDelta, userID string, now time.Time) error
}

// WalletRepositoryFacade combines all wallet repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}
