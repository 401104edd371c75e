package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	"github.com/buildsite/fundledger/internal/models"
	"github.com/buildsite/fundledger/internal/utils/mapping"
)

const loanColumns = `loan_id, lender_project_id, borrower_project_id, amount, settlement_amount, expense_id, expense_type, description, loan_date, status, settled_date, last_settlement_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxLoanRepository struct {
	pool *pgxpool.Pool
}

// newPgxLoanRepository creates a new repository for cross-project loan data.
// Loans are written only inside fund repository transactions; this repository
// serves the read side.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{pool: pool}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (models.CrossProjectLoan, error) {
	var m models.CrossProjectLoan
	err := row.Scan(
		&m.LoanID,
		&m.LenderProjectID,
		&m.BorrowerProjectID,
		&m.Amount,
		&m.SettlementAmount,
		&m.ExpenseID,
		&m.ExpenseType,
		&m.Description,
		&m.LoanDate,
		&m.Status,
		&m.SettledDate,
		&m.LastSettlementDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.CrossProjectLoan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM cross_project_loans
		WHERE loan_id = $1;
	`
	m, err := scanLoan(r.pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("loan %s not found", loanID))
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}
	domainLoan := mapping.ToDomainLoan(m)
	return &domainLoan, nil
}

// FindLoansByLender retrieves all loans where the project is the lender.
func (r *PgxLoanRepository) FindLoansByLender(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM cross_project_loans
		WHERE lender_project_id = $1
		ORDER BY loan_date, loan_id;
	`
	return r.queryLoans(ctx, query, projectID)
}

// FindLoansByBorrower retrieves all loans where the project is the borrower.
func (r *PgxLoanRepository) FindLoansByBorrower(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM cross_project_loans
		WHERE borrower_project_id = $1
		ORDER BY loan_date, loan_id;
	`
	return r.queryLoans(ctx, query, projectID)
}

// FindActiveLoansByBorrower retrieves the borrower's unsettled loans oldest
// first, loan ID as tie-break, which is the repayment order.
func (r *PgxLoanRepository) FindActiveLoansByBorrower(ctx context.Context, projectID string) ([]domain.CrossProjectLoan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM cross_project_loans
		WHERE borrower_project_id = $1 AND status = 'ACTIVE'
		ORDER BY loan_date, loan_id;
	`
	return r.queryLoans(ctx, query, projectID)
}

func (r *PgxLoanRepository) queryLoans(ctx context.Context, query string, arg any) ([]domain.CrossProjectLoan, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	modelLoans := []models.CrossProjectLoan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		modelLoans = append(modelLoans, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return mapping.ToDomainLoanSlice(modelLoans), nil
}
