package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	"github.com/buildsite/fundledger/internal/models"
	"github.com/buildsite/fundledger/internal/utils/mapping"
)

const settlementColumns = `settlement_id, loan_id, lender_project_id, borrower_project_id, amount, settlement_date, settlement_type, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxSettlementRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettlementRepository creates a new repository for the append-only
// settlement audit trail. Rows are written only inside fund repository
// transactions.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{pool: pool}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

func scanSettlement(row pgx.Row) (models.SettlementRecord, error) {
	var m models.SettlementRecord
	err := row.Scan(
		&m.SettlementID,
		&m.LoanID,
		&m.LenderProjectID,
		&m.BorrowerProjectID,
		&m.Amount,
		&m.SettlementDate,
		&m.SettlementType,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListSettlementsByLoan retrieves one loan's settlement history, oldest first.
func (r *PgxSettlementRepository) ListSettlementsByLoan(ctx context.Context, loanID string) ([]domain.SettlementRecord, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlement_records
		WHERE loan_id = $1
		ORDER BY settlement_date, settlement_id;
	`
	return r.querySettlements(ctx, query, loanID)
}

// ListSettlementsByProject retrieves settlements where the project is lender
// or borrower, newest first.
func (r *PgxSettlementRepository) ListSettlementsByProject(ctx context.Context, projectID string) ([]domain.SettlementRecord, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlement_records
		WHERE lender_project_id = $1 OR borrower_project_id = $1
		ORDER BY settlement_date DESC, settlement_id;
	`
	return r.querySettlements(ctx, query, projectID)
}

func (r *PgxSettlementRepository) querySettlements(ctx context.Context, query string, arg any) ([]domain.SettlementRecord, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement records: %w", err)
	}
	defer rows.Close()

	modelRecords := []models.SettlementRecord{}
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		modelRecords = append(modelRecords, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return mapping.ToDomainSettlementSlice(modelRecords), nil
}
