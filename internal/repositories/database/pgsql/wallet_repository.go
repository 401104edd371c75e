package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	"github.com/buildsite/fundledger/internal/models"
	"github.com/buildsite/fundledger/internal/utils/mapping"
)

const walletColumns = `wallet_id, project_id, virtual_balance, advance_received, pending_dues, total_loans_given, total_loans_received, created_at, created_by, last_updated_at, last_updated_by`

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for project wallet data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func scanWallet(row pgx.Row) (models.ProjectWallet, error) {
	var m models.ProjectWallet
	err := row.Scan(
		&m.WalletID,
		&m.ProjectID,
		&m.VirtualBalance,
		&m.AdvanceReceived,
		&m.PendingDues,
		&m.TotalLoansGiven,
		&m.TotalLoansReceived,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// InitializeWallet creates the wallet for a project if it does not exist and
// returns the current record. The unique constraint on project_id makes this
// a race-free get-or-create: concurrent initializers all end up reading the
// one surviving row.
func (r *PgxWalletRepository) InitializeWallet(ctx context.Context, wallet domain.ProjectWallet) (*domain.ProjectWallet, error) {
	modelWallet := mapping.ToModelWallet(wallet)

	insertQuery := `
		INSERT INTO project_wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (project_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, insertQuery,
		modelWallet.WalletID,
		modelWallet.ProjectID,
		modelWallet.VirtualBalance,
		modelWallet.AdvanceReceived,
		modelWallet.PendingDues,
		modelWallet.TotalLoansGiven,
		modelWallet.TotalLoansReceived,
		modelWallet.CreatedAt,
		modelWallet.CreatedBy,
		modelWallet.LastUpdatedAt,
		modelWallet.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize wallet for project %s: %w", modelWallet.ProjectID, err)
	}

	return r.FindWalletByProject(ctx, wallet.ProjectID)
}

// FindWalletByProject retrieves the wallet for a project, or ErrNotFound.
func (r *PgxWalletRepository) FindWalletByProject(ctx context.Context, projectID string) (*domain.ProjectWallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM project_wallets
		WHERE project_id = $1;
	`
	m, err := scanWallet(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("wallet for project %s not found", projectID))
		}
		return nil, fmt.Errorf("failed to find wallet for project %s: %w", projectID, err)
	}
	domainWallet := mapping.ToDomainWallet(m)
	return &domainWallet, nil
}

// ListWallets retrieves every project wallet.
func (r *PgxWalletRepository) ListWallets(ctx context.Context) ([]domain.ProjectWallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM project_wallets
		ORDER BY project_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	modelWallets := []models.ProjectWallet{}
	for rows.Next() {
		m, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		modelWallets = append(modelWallets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}
	return mapping.ToDomainWalletSlice(modelWallets), nil
}

// ApplyWalletDeltas applies counter increments to the named wallets as one
// transaction.
func (r *PgxWalletRepository) ApplyWalletDeltas(ctx context.Context, deltas map[string]domain.WalletDelta, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	projectIDs := make([]string, 0, len(deltas))
	for projectID := range deltas {
		projectIDs = append(projectIDs, projectID)
	}
	sort.Strings(projectIDs)

	if _, err := r.FindWalletsByProjectIDsForUpdate(ctx, tx, projectIDs); err != nil {
		return err
	}
	if err := r.ApplyWalletDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindWalletsByProjectIDsForUpdate selects wallets and locks their rows for
// update. Must be called within a transaction; callers lock in sorted
// project-ID order so concurrent multi-wallet operations cannot deadlock.
func (r *PgxWalletRepository) FindWalletsByProjectIDsForUpdate(ctx context.Context, tx pgx.Tx, projectIDs []string) (map[string]domain.ProjectWallet, error) {
	if len(projectIDs) == 0 {
		return map[string]domain.ProjectWallet{}, nil
	}

	query := `
		SELECT ` + walletColumns + `
		FROM project_wallets
		WHERE project_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets for update: %w", err)
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.ProjectWallet)
	for rows.Next() {
		m, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked wallet row: %w", err)
		}
		walletsMap[m.ProjectID] = mapping.ToDomainWallet(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked wallet rows: %w", err)
	}

	if len(walletsMap) != len(projectIDs) {
		missing := []string{}
		for _, projectID := range projectIDs {
			if _, found := walletsMap[projectID]; !found {
				missing = append(missing, projectID)
			}
		}
		slog.WarnContext(ctx, "Some wallets requested for update lock were not found", "missing_projects", missing)
		return nil, fmt.Errorf("%w: could not find or lock wallets for projects: %v", apperrors.ErrNotFound, missing)
	}
	return walletsMap, nil
}

// ApplyWalletDeltasInTx applies counter increments to the named wallets
// within the given transaction.
func (r *PgxWalletRepository) ApplyWalletDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]domain.WalletDelta, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE project_wallets
		SET virtual_balance = virtual_balance + $2,
		    advance_received = advance_received + $3,
		    pending_dues = pending_dues + $4,
		    total_loans_given = total_loans_given + $5,
		    total_loans_received = total_loans_received + $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE project_id = $1;
	`
	batch := &pgx.Batch{}
	projectIDs := make([]string, 0, len(deltas))
	for projectID, delta := range deltas {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, projectID,
			delta.VirtualBalance,
			delta.AdvanceReceived,
			delta.PendingDues,
			delta.TotalLoansGiven,
			delta.TotalLoansReceived,
			now, userID)
		projectIDs = append(projectIDs, projectID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to apply wallet delta for project %s: %w", projectIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: wallet for project %s not found during delta update", apperrors.ErrNotFound, projectIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close wallet delta batch: %w", err)
	}
	return batchErr
}
