package services

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/dto"
)

// CrossProjectExpenseSvcFacade exposes the cross-project expense recorder.
type CrossProjectExpenseSvcFacade interface {
	// RecordCrossProjectExpense validates that the payment sources sum to
	// the expense total, then records the expense, creates a loan per
	// non-beneficiary source, and applies the lender/borrower wallet deltas
	// in one transaction. Returns the expense and the loans created.
	RecordCrossProjectExpense(ctx context.Context, req dto.RecordCrossProjectExpenseRequest, userID string) (*domain.Expense, []domain.CrossProjectLoan, error)

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByProject retrieves expenses benefiting a project.
	ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error)
}
