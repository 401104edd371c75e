package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portsrepo "github.com/buildsite/fundledger/internal/core/ports/repositories"
	"github.com/buildsite/fundledger/internal/utils/mapping"
)

// PgxFundRepository implements the multi-record ledger mutations. Each method
// runs one database transaction covering every row it touches: the payment or
// expense, the loan rows, the settlement records, and the lender/borrower
// wallet pair. Wallet rows are locked in sorted project-ID order so two
// operations touching overlapping wallet sets cannot deadlock.
type PgxFundRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletRepositoryFacade
}

// newPgxFundRepository creates the transactional fund repository.
func newPgxFundRepository(pool *pgxpool.Pool, walletRepo portsrepo.WalletRepositoryFacade) portsrepo.FundRepository {
	return &PgxFundRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

var _ portsrepo.FundRepository = (*PgxFundRepository)(nil)

// lockAndApplyDeltas locks the wallets named by the deltas (sorted order) and
// applies the counter increments, all within tx.
func (r *PgxFundRepository) lockAndApplyDeltas(ctx context.Context, tx pgx.Tx, deltas map[string]domain.WalletDelta, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	projectIDs := make([]string, 0, len(deltas))
	for projectID := range deltas {
		projectIDs = append(projectIDs, projectID)
	}
	sort.Strings(projectIDs)

	if _, err := r.walletRepo.FindWalletsByProjectIDsForUpdate(ctx, tx, projectIDs); err != nil {
		return fmt.Errorf("failed to lock wallets: %w", err)
	}
	if err := r.walletRepo.ApplyWalletDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return fmt.Errorf("failed to apply wallet deltas: %w", err)
	}
	return nil
}

func insertPaymentTx(ctx context.Context, tx pgx.Tx, payment domain.ClientPayment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO client_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID, m.ProjectID, m.Amount, m.PaymentDate,
		m.PaidFrom, m.ReceivedBy, m.Method, m.Notes,
		m.IsMultiProject, m.IsAllocated, m.AllocationDate, m.AllocationNotes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}
	return nil
}

func insertAllocationsTx(ctx context.Context, tx pgx.Tx, allocations []domain.PaymentAllocation) error {
	if len(allocations) == 0 {
		return nil
	}
	query := `
		INSERT INTO payment_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, a := range allocations {
		m := mapping.ToModelAllocation(a)
		batch.Queue(query,
			m.AllocationID, m.PaymentID, m.ProjectID, m.Amount, m.Description, m.Date,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert payment allocations: %w", err)
	}
	return nil
}

func insertLoansTx(ctx context.Context, tx pgx.Tx, loans []domain.CrossProjectLoan) error {
	if len(loans) == 0 {
		return nil
	}
	query := `
		INSERT INTO cross_project_loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, l := range loans {
		m := mapping.ToModelLoan(l)
		batch.Queue(query,
			m.LoanID, m.LenderProjectID, m.BorrowerProjectID,
			m.Amount, m.SettlementAmount, m.ExpenseID, m.ExpenseType,
			m.Description, m.LoanDate, m.Status, m.SettledDate, m.LastSettlementDate,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert cross-project loans: %w", err)
	}
	return nil
}

func insertSettlementTx(ctx context.Context, tx pgx.Tx, record domain.SettlementRecord) error {
	m := mapping.ToModelSettlement(record)
	query := `
		INSERT INTO settlement_records (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.SettlementID, m.LoanID, m.LenderProjectID, m.BorrowerProjectID,
		m.Amount, m.SettlementDate, m.SettlementType, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement record for loan %s: %w", m.LoanID, err)
	}
	return nil
}

// AllocatePayment persists a new payment, its allocations, and the wallet
// credits as one transaction.
func (r *PgxFundRepository) AllocatePayment(ctx context.Context, payment domain.ClientPayment, allocations []domain.PaymentAllocation, deltas map[string]domain.WalletDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertPaymentTx(ctx, tx, payment); err != nil {
		return err
	}
	if err := insertAllocationsTx(ctx, tx, allocations); err != nil {
		return err
	}
	if err := r.lockAndApplyDeltas(ctx, tx, deltas, payment.CreatedBy, payment.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkPaymentAllocated records allocations against an existing payment, marks
// it allocated, and applies the wallet credits, all in one transaction. The
// payment row is locked first so two callers cannot both allocate it.
func (r *PgxFundRepository) MarkPaymentAllocated(ctx context.Context, paymentID string, allocations []domain.PaymentAllocation, deltas map[string]domain.WalletDelta, allocationNotes string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT is_allocated
		FROM client_payments
		WHERE payment_id = $1
		FOR UPDATE;
	`
	var isAllocated bool
	if err := tx.QueryRow(ctx, lockQuery, paymentID).Scan(&isAllocated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
		}
		return fmt.Errorf("failed to lock payment %s: %w", paymentID, err)
	}
	if isAllocated {
		return fmt.Errorf("%w: payment %s has already been allocated", apperrors.ErrConflict, paymentID)
	}

	if err := insertAllocationsTx(ctx, tx, allocations); err != nil {
		return err
	}

	updateQuery := `
		UPDATE client_payments
		SET is_allocated = TRUE, allocation_date = $2, allocation_notes = $3, last_updated_at = $2, last_updated_by = $4
		WHERE payment_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, paymentID, now, allocationNotes, userID); err != nil {
		return fmt.Errorf("failed to mark payment %s allocated: %w", paymentID, err)
	}

	if err := r.lockAndApplyDeltas(ctx, tx, deltas, userID, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePaymentWithAllocations removes a payment and its allocations,
// reversing each allocation's wallet credit. The reversal amounts are derived
// from the allocation rows inside the transaction, never from caller input.
func (r *PgxFundRepository) DeletePaymentWithAllocations(ctx context.Context, paymentID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT payment_id
		FROM client_payments
		WHERE payment_id = $1
		FOR UPDATE;
	`
	var lockedID string
	if err := tx.QueryRow(ctx, lockQuery, paymentID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
		}
		return fmt.Errorf("failed to lock payment %s: %w", paymentID, err)
	}

	allocQuery := `
		SELECT project_id, amount
		FROM payment_allocations
		WHERE payment_id = $1;
	`
	rows, err := tx.Query(ctx, allocQuery, paymentID)
	if err != nil {
		return fmt.Errorf("failed to query allocations of payment %s: %w", paymentID, err)
	}
	deltas := make(map[string]domain.WalletDelta)
	for rows.Next() {
		var projectID string
		var amount decimal.Decimal
		if err := rows.Scan(&projectID, &amount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan allocation of payment %s: %w", paymentID, err)
		}
		deltas[projectID] = deltas[projectID].Add(domain.WalletDelta{
			VirtualBalance:  amount.Neg(),
			AdvanceReceived: amount.Neg(),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating allocations of payment %s: %w", paymentID, err)
	}

	if err := r.lockAndApplyDeltas(ctx, tx, deltas, userID, now); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payment_allocations WHERE payment_id = $1;`, paymentID); err != nil {
		return fmt.Errorf("failed to delete allocations of payment %s: %w", paymentID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM client_payments WHERE payment_id = $1;`, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	return r.Commit(ctx, tx)
}

// RecordCrossProjectExpense persists the expense, the loans it gives rise to,
// and the lender/borrower wallet deltas as one transaction, so the
// conservation invariant is never observable in a half-applied state.
func (r *PgxFundRepository) RecordCrossProjectExpense(ctx context.Context, expense domain.Expense, loans []domain.CrossProjectLoan, deltas map[string]domain.WalletDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m, err := mapping.ToModelExpense(expense)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	expenseQuery := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, expenseQuery,
		m.ExpenseID, m.ProjectID, m.Description, m.Category,
		m.TotalAmount, m.ExpenseDate, m.ExpenseType,
		m.PaidViaCrossProject, m.PaymentSources,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", m.ExpenseID, err)
	}

	if err := insertLoansTx(ctx, tx, loans); err != nil {
		return err
	}
	if err := r.lockAndApplyDeltas(ctx, tx, deltas, expense.CreatedBy, expense.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SettleLoansFIFO consumes available funds to retire the borrower's active
// loans oldest-first. The active loan rows are locked for the duration of the
// transaction, so concurrent settlement attempts against the same borrower
// serialize instead of losing updates.
func (r *PgxFundRepository) SettleLoansFIFO(ctx context.Context, borrowerProjectID string, available decimal.Decimal, userID string, now time.Time) (*domain.SettlementOutcome, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	loansQuery := `
		SELECT ` + loanColumns + `
		FROM cross_project_loans
		WHERE borrower_project_id = $1 AND status = 'ACTIVE'
		ORDER BY loan_date, loan_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, loansQuery, borrowerProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock active loans for borrower %s: %w", borrowerProjectID, err)
	}
	loans := []domain.CrossProjectLoan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan locked loan row: %w", err)
		}
		loans = append(loans, mapping.ToDomainLoan(m))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked loan rows: %w", err)
	}

	outcome := &domain.SettlementOutcome{
		SettledLoans:    []domain.SettledLoan{},
		RemainingAmount: available,
	}
	if len(loans) == 0 {
		// Nothing to settle; the transaction is read-only.
		if err := r.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return outcome, nil
	}

	// Planning is pure; this transaction only applies the plan under the
	// row locks taken above.
	plan := domain.PlanFIFOSettlement(loans, available)
	for _, step := range plan.Steps {
		updated, err := r.applySettlementTx(ctx, tx, step.Loan, step.SettlementAmount, step.SettlementType, "", userID, now)
		if err != nil {
			return nil, err
		}
		outcome.SettledLoans = append(outcome.SettledLoans, domain.SettledLoan{
			Loan:             *updated,
			SettlementAmount: step.SettlementAmount,
		})
	}
	outcome.RemainingAmount = plan.RemainingAmount

	if err := r.lockAndApplyDeltas(ctx, tx, plan.WalletDeltas, userID, now); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return outcome, nil
}

// SettleLoan applies one settlement amount to a single loan. The outstanding
// balance is re-checked under the row lock; a concurrent settlement that
// consumed the balance surfaces as ErrConflict.
func (r *PgxFundRepository) SettleLoan(ctx context.Context, loanID string, amount decimal.Decimal, settlementType domain.SettlementType, notes string, userID string, now time.Time) (*domain.CrossProjectLoan, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT ` + loanColumns + `
		FROM cross_project_loans
		WHERE loan_id = $1
		FOR UPDATE;
	`
	m, err := scanLoan(tx.QueryRow(ctx, lockQuery, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("loan %s not found", loanID))
		}
		return nil, fmt.Errorf("failed to lock loan %s: %w", loanID, err)
	}
	loan := mapping.ToDomainLoan(m)

	if loan.Status == domain.LoanSettled {
		return nil, fmt.Errorf("%w: loan %s was settled concurrently", apperrors.ErrConflict, loanID)
	}
	if amount.GreaterThan(loan.Outstanding()) {
		return nil, fmt.Errorf("%w: settlement amount (%s) exceeds outstanding balance (%s) of loan %s",
			apperrors.ErrConflict, amount, loan.Outstanding(), loanID)
	}

	updated, err := r.applySettlementTx(ctx, tx, loan, amount, settlementType, notes, userID, now)
	if err != nil {
		return nil, err
	}

	deltas := map[string]domain.WalletDelta{
		loan.LenderProjectID: {
			VirtualBalance:  amount,
			TotalLoansGiven: amount.Neg(),
		},
		loan.BorrowerProjectID: {
			TotalLoansReceived: amount.Neg(),
		},
	}
	if err := r.lockAndApplyDeltas(ctx, tx, deltas, userID, now); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// applySettlementTx updates the loan row for one settlement and appends the
// audit record, within tx. Returns the loan's post-settlement state.
func (r *PgxFundRepository) applySettlementTx(ctx context.Context, tx pgx.Tx, loan domain.CrossProjectLoan, amount decimal.Decimal, settlementType domain.SettlementType, notes string, userID string, now time.Time) (*domain.CrossProjectLoan, error) {
	newSettlementAmount := loan.SettlementAmount.Add(amount)
	fullySettled := newSettlementAmount.GreaterThanOrEqual(loan.Amount)

	updated := loan
	updated.SettlementAmount = newSettlementAmount
	updated.LastSettlementDate = &now
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID
	if fullySettled {
		updated.Status = domain.LoanSettled
		updated.SettledDate = &now
	}

	query := `
		UPDATE cross_project_loans
		SET settlement_amount = $2, status = $3, settled_date = $4, last_settlement_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE loan_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		loan.LoanID,
		updated.SettlementAmount,
		string(updated.Status),
		updated.SettledDate,
		updated.LastSettlementDate,
		now,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update loan %s for settlement: %w", loan.LoanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: loan %s vanished during settlement", apperrors.ErrNotFound, loan.LoanID)
	}

	record := domain.SettlementRecord{
		SettlementID:      uuid.NewString(),
		LoanID:            loan.LoanID,
		LenderProjectID:   loan.LenderProjectID,
		BorrowerProjectID: loan.BorrowerProjectID,
		Amount:            amount,
		SettlementDate:    now,
		SettlementType:    settlementType,
		Notes:             notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := insertSettlementTx(ctx, tx, record); err != nil {
		return nil, err
	}
	return &updated, nil
}
