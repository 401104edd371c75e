package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	"github.com/buildsite/fundledger/internal/models"
	"github.com/buildsite/fundledger/internal/utils/mapping"
)

const expenseColumns = `expense_id, project_id, description, category, total_amount, expense_date, expense_type, paid_via_cross_project, payment_sources, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	pool *pgxpool.Pool
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{pool: pool}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ProjectID,
		&m.Description,
		&m.Category,
		&m.TotalAmount,
		&m.ExpenseDate,
		&m.ExpenseType,
		&m.PaidViaCrossProject,
		&m.PaymentSources,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense persists a new expense record.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m, err := mapping.ToModelExpense(expense)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.pool.Exec(ctx, query,
		m.ExpenseID, m.ProjectID, m.Description, m.Category,
		m.TotalAmount, m.ExpenseDate, m.ExpenseType,
		m.PaidViaCrossProject, m.PaymentSources,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: expense with ID %s already exists", apperrors.ErrDuplicate, m.ExpenseID)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = $1;
	`
	m, err := scanExpense(r.pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	domainExpense, err := mapping.ToDomainExpense(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return &domainExpense, nil
}

// ListExpensesByProject retrieves expenses benefiting a project, newest first.
func (r *PgxExpenseRepository) ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE project_id = $1
		ORDER BY expense_date DESC, expense_id;
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for project %s: %w", projectID, err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		domainExpense, err := mapping.ToDomainExpense(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		expenses = append(expenses, domainExpense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
