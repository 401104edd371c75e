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

const paymentColumns = `payment_id, project_id, amount, payment_date, paid_from, received_by, method, notes, is_multi_project, is_allocated, allocation_date, allocation_notes, created_at, created_by, last_updated_at, last_updated_by`

const allocationColumns = `allocation_id, payment_id, project_id, amount, description, allocation_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

// newPgxPaymentRepository creates a new repository for client payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{pool: pool}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.ClientPayment, error) {
	var m models.ClientPayment
	err := row.Scan(
		&m.PaymentID,
		&m.ProjectID,
		&m.Amount,
		&m.PaymentDate,
		&m.PaidFrom,
		&m.ReceivedBy,
		&m.Method,
		&m.Notes,
		&m.IsMultiProject,
		&m.IsAllocated,
		&m.AllocationDate,
		&m.AllocationNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanAllocation(row pgx.Row) (models.PaymentAllocation, error) {
	var m models.PaymentAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.PaymentID,
		&m.ProjectID,
		&m.Amount,
		&m.Description,
		&m.Date,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePayment inserts a new client payment record.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.ClientPayment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO client_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PaymentID, m.ProjectID, m.Amount, m.PaymentDate,
		m.PaidFrom, m.ReceivedBy, m.Method, m.Notes,
		m.IsMultiProject, m.IsAllocated, m.AllocationDate, m.AllocationNotes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: payment with ID %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a client payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.ClientPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM client_payments
		WHERE payment_id = $1;
	`
	m, err := scanPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	domainPayment := mapping.ToDomainPayment(m)
	return &domainPayment, nil
}

// ListPaymentsByProject retrieves payments recorded against a project,
// newest first.
func (r *PgxPaymentRepository) ListPaymentsByProject(ctx context.Context, projectID string) ([]domain.ClientPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM client_payments
		WHERE project_id = $1
		ORDER BY payment_date DESC, payment_id;
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for project %s: %w", projectID, err)
	}
	defer rows.Close()

	payments := []domain.ClientPayment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// FindAllocationsByPayment retrieves all allocations of one payment.
func (r *PgxPaymentRepository) FindAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY allocation_id;
	`
	return r.queryAllocations(ctx, query, paymentID)
}

// FindAllocationsByProject retrieves all allocations credited to a project.
func (r *PgxPaymentRepository) FindAllocationsByProject(ctx context.Context, projectID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM payment_allocations
		WHERE project_id = $1
		ORDER BY allocation_date, allocation_id;
	`
	return r.queryAllocations(ctx, query, projectID)
}

func (r *PgxPaymentRepository) queryAllocations(ctx context.Context, query string, arg any) ([]domain.PaymentAllocation, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment allocations: %w", err)
	}
	defer rows.Close()

	modelAllocations := []models.PaymentAllocation{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		modelAllocations = append(modelAllocations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return mapping.ToDomainAllocationSlice(modelAllocations), nil
}
