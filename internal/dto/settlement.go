package dto

import (
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AutoSettleRequest triggers FIFO settlement of a borrower's active loans.
type AutoSettleRequest struct {
	AvailableAmount decimal.Decimal `json:"availableAmount" binding:"required"`
}

// ManualSettlementRequest settles part or all of a single loan.
type ManualSettlementRequest struct {
	SettlementAmount decimal.Decimal `json:"settlementAmount" binding:"required"`
	Notes            string          `json:"notes"`
}

// LoanResponse mirrors domain.CrossProjectLoan, with the derived outstanding
// balance included.
type LoanResponse struct {
	LoanID            string             `json:"loanID"`
	LenderProjectID   string             `json:"lenderProjectID"`
	BorrowerProjectID string             `json:"borrowerProjectID"`
	Amount            decimal.Decimal    `json:"amount"`
	SettlementAmount  decimal.Decimal    `json:"settlementAmount"`
	Outstanding       decimal.Decimal    `json:"outstanding"`
	ExpenseID         string             `json:"expenseID"`
	ExpenseType       domain.ExpenseType `json:"expenseType"`
	Description       string             `json:"description"`
	Date              time.Time          `json:"date"`
	Status            domain.LoanStatus  `json:"status"`
	SettledDate       *time.Time         `json:"settledDate,omitempty"`
}

// SettlementRecordResponse mirrors domain.SettlementRecord.
type SettlementRecordResponse struct {
	SettlementID      string                `json:"settlementID"`
	LoanID            string                `json:"loanID"`
	LenderProjectID   string                `json:"lenderProjectID"`
	BorrowerProjectID string                `json:"borrowerProjectID"`
	Amount            decimal.Decimal       `json:"amount"`
	SettlementDate    time.Time             `json:"settlementDate"`
	SettlementType    domain.SettlementType `json:"settlementType"`
	Notes             string                `json:"notes,omitempty"`
}

// SettledLoanResponse reports one loan touched by an auto-settlement run.
type SettledLoanResponse struct {
	Loan             LoanResponse    `json:"loan"`
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
}

// AutoSettleResponse is the outcome of an auto-settlement run.
type AutoSettleResponse struct {
	SettledLoans    []SettledLoanResponse `json:"settledLoans"`
	RemainingAmount decimal.Decimal       `json:"remainingAmount"`
}

// ManualSettlementResponse is the outcome of settling a single loan.
type ManualSettlementResponse struct {
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	FullySettled     bool            `json:"fullySettled"`
}

// ToLoanResponse converts a domain loan to its response DTO.
func ToLoanResponse(l *domain.CrossProjectLoan) LoanResponse {
	return LoanResponse{
		LoanID:            l.LoanID,
		LenderProjectID:   l.LenderProjectID,
		BorrowerProjectID: l.BorrowerProjectID,
		Amount:            l.Amount,
		SettlementAmount:  l.SettlementAmount,
		Outstanding:       l.Outstanding(),
		ExpenseID:         l.ExpenseID,
		ExpenseType:       l.ExpenseType,
		Description:       l.Description,
		Date:              l.Date,
		Status:            l.Status,
		SettledDate:       l.SettledDate,
	}
}

// ToLoanResponses converts a slice of domain loans.
func ToLoanResponses(loans []domain.CrossProjectLoan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i])
	}
	return res
}

// ToSettlementRecordResponses converts a slice of settlement records.
func ToSettlementRecordResponses(records []domain.SettlementRecord) []SettlementRecordResponse {
	res := make([]SettlementRecordResponse, len(records))
	for i, r := range records {
		res[i] = SettlementRecordResponse{
			SettlementID:      r.SettlementID,
			LoanID:            r.LoanID,
			LenderProjectID:   r.LenderProjectID,
			BorrowerProjectID: r.BorrowerProjectID,
			Amount:            r.Amount,
			SettlementDate:    r.SettlementDate,
			SettlementType:    r.SettlementType,
			Notes:             r.Notes,
		}
	}
	return res
}

// ToAutoSettleResponse converts a settlement outcome to its response DTO.
func ToAutoSettleResponse(outcome *domain.SettlementOutcome) AutoSettleResponse {
	settled := make([]SettledLoanResponse, len(outcome.SettledLoans))
	for i, s := range outcome.SettledLoans {
		settled[i] = SettledLoanResponse{
			Loan:             ToLoanResponse(&s.Loan),
			SettlementAmount: s.SettlementAmount,
		}
	}
	return AutoSettleResponse{
		SettledLoans:    settled,
		RemainingAmount: outcome.RemainingAmount,
	}
}
