package repositories

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// ExpenseReader defines read operations for expense data. Cross-project
// expenses are created through FundRepository; plain self-funded expenses
// may be saved directly.
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByProject retrieves expenses benefiting a project.
	ListExpensesByProject(ctx context.Context, projectID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpense persists a new expense record.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
