package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType classifies what kind of cost an expense record captures.
type ExpenseType string

const (
	ExpenseMaterial ExpenseType = "MATERIAL"
	ExpenseLabour   ExpenseType = "LABOUR"
	ExpenseGeneral  ExpenseType = "GENERAL"
)

// PaymentSource names a project that contributed funds towards an expense.
type PaymentSource struct {
	ProjectID string          `json:"projectID"`
	Amount    decimal.Decimal `json:"amount"`
}

// Expense is a cost recorded against the project that benefits from it.
// When PaidViaCrossProject is set, PaymentSources lists which projects'
// wallets actually funded it; sources other than the beneficiary give rise
// to CrossProjectLoan records.
type Expense struct {
	ExpenseID           string          `json:"expenseID"`
	ProjectID           string          `json:"projectID"` // beneficiary
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	Date                time.Time       `json:"date"`
	ExpenseType         ExpenseType     `json:"expenseType"`
	PaidViaCrossProject bool            `json:"paidViaCrossProject"`
	PaymentSources      []PaymentSource `json:"paymentSources,omitempty"`
	AuditFields
}
