package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus mirrors domain.LoanStatus at the storage layer.
type LoanStatus string

// CrossProjectLoan represents a row in the cross_project_loans table.
type CrossProjectLoan struct {
	LoanID             string          `db:"loan_id"`
	LenderProjectID    string          `db:"lender_project_id"`
	BorrowerProjectID  string          `db:"borrower_project_id"`
	Amount             decimal.Decimal `db:"amount"`
	SettlementAmount   decimal.Decimal `db:"settlement_amount"`
	ExpenseID          string          `db:"expense_id"`
	ExpenseType        ExpenseType     `db:"expense_type"`
	Description        string          `db:"description"`
	LoanDate           time.Time       `db:"loan_date"`
	Status             LoanStatus      `db:"status"`
	SettledDate        *time.Time      `db:"settled_date"`
	LastSettlementDate *time.Time      `db:"last_settlement_date"`
	AuditFields
}
