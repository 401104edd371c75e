package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates the state of a cross-project loan.
type LoanStatus string

const (
	LoanActive  LoanStatus = "ACTIVE"
	LoanSettled LoanStatus = "SETTLED"
)

// CrossProjectLoan records a transfer of spending power from one project's
// wallet to another's, created when one project's funds pay for another
// project's expense. Amount is the original principal and never changes;
// SettlementAmount grows monotonically towards it as the loan is repaid.
type CrossProjectLoan struct {
	LoanID             string          `json:"loanID"`
	LenderProjectID    string          `json:"lenderProjectID"`
	BorrowerProjectID  string          `json:"borrowerProjectID"`
	Amount             decimal.Decimal `json:"amount"`
	SettlementAmount   decimal.Decimal `json:"settlementAmount"`
	ExpenseID          string          `json:"expenseID"`
	ExpenseType        ExpenseType     `json:"expenseType"`
	Description        string          `json:"description"`
	Date               time.Time       `json:"date"` // date of the originating expense, FIFO sort key
	Status             LoanStatus      `json:"status"`
	SettledDate        *time.Time      `json:"settledDate,omitempty"`
	LastSettlementDate *time.Time      `json:"lastSettlementDate,omitempty"`
	AuditFields
}

// Outstanding is the unpaid remainder of the principal.
func (l CrossProjectLoan) Outstanding() decimal.Decimal {
	return l.Amount.Sub(l.SettlementAmount)
}
