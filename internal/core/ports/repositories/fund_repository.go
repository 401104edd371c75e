package repositories

import (
	"context"
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundRepository groups the ledger mutations that span several records.
// Every method executes as a single database transaction: the payment or
// expense record, the loan rows, the settlement rows, and the wallet deltas
// for lender and borrower commit together or not at all, so the global
// balance invariant (total loans given == total loans received) is never
// observable in a half-applied state.
type FundRepository interface {
	// AllocatePayment persists a new payment, its allocations, and the
	// corresponding wallet credits.
	AllocatePayment(ctx context.Context, payment domain.ClientPayment, allocations []domain.PaymentAllocation, deltas map[string]domain.WalletDelta) error

	// MarkPaymentAllocated records allocations against an existing payment,
	// marks the payment allocated, and applies the wallet credits.
	MarkPaymentAllocated(ctx context.Context, paymentID string, allocations []domain.PaymentAllocation, deltas map[string]domain.WalletDelta, allocationNotes string, userID string, now time.Time) error

	// DeletePaymentWithAllocations removes a payment and its allocations,
	// reversing each allocation's wallet credit. The reversal amounts are
	// derived from the allocation rows inside the transaction.
	DeletePaymentWithAllocations(ctx context.Context, paymentID string, userID string, now time.Time) error

	// RecordCrossProjectExpense persists the expense, the loans it gives
	// rise to, and the lender/borrower wallet deltas.
	RecordCrossProjectExpense(ctx context.Context, expense domain.Expense, loans []domain.CrossProjectLoan, deltas map[string]domain.WalletDelta) error

	// SettleLoansFIFO consumes available funds to retire the borrower's
	// active loans oldest-first. Loan rows are locked for the duration, so
	// concurrent settlement attempts serialize rather than losing updates.
	SettleLoansFIFO(ctx context.Context, borrowerProjectID string, available decimal.Decimal, userID string, now time.Time) (*domain.SettlementOutcome, error)

	// SettleLoan applies a settlement amount to a single loan. The
	// outstanding balance is re-checked under the row lock; a concurrent
	// settlement that consumed the balance surfaces as ErrConflict.
	SettleLoan(ctx context.Context, loanID string, amount decimal.Decimal, settlementType domain.SettlementType, notes string, userID string, now time.Time) (*domain.CrossProjectLoan, error)
}
