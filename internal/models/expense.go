package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType mirrors domain.ExpenseType at the storage layer.
type ExpenseType string

// Expense represents a row in the expenses table. Material, labour and
// general expenses share the table, discriminated by expense_type.
// payment_sources is stored as jsonb for audit.
type Expense struct {
	ExpenseID           string          `db:"expense_id"`
	ProjectID           string          `db:"project_id"`
	Description         string          `db:"description"`
	Category            string          `db:"category"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	ExpenseDate         time.Time       `db:"expense_date"`
	ExpenseType         ExpenseType     `db:"expense_type"`
	PaidViaCrossProject bool            `db:"paid_via_cross_project"`
	PaymentSources      []byte          `db:"payment_sources"` // jsonb
	AuditFields
}
