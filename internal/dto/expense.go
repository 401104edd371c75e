package dto

import (
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentSourceEntry names a project paying part of an expense.
type PaymentSourceEntry struct {
	ProjectID string          `json:"projectID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// ExpenseDetails carries the expense fields shared by all expense types.
type ExpenseDetails struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
}

// RecordCrossProjectExpenseRequest records an expense benefiting one project
// but paid (wholly or partly) from other projects' wallets. Source amounts
// must sum to the expense total.
type RecordCrossProjectExpenseRequest struct {
	BeneficiaryProjectID string               `json:"beneficiaryProjectID" binding:"required"`
	PaymentSources       []PaymentSourceEntry `json:"paymentSources" binding:"required,min=1,dive"`
	ExpenseDetails       ExpenseDetails       `json:"expenseDetails" binding:"required"`
	ExpenseType          domain.ExpenseType   `json:"expenseType" binding:"required,oneof=MATERIAL LABOUR GENERAL"`
}

// ExpenseResponse mirrors domain.Expense.
type ExpenseResponse struct {
	ExpenseID           string                 `json:"expenseID"`
	ProjectID           string                 `json:"projectID"`
	Description         string                 `json:"description"`
	Category            string                 `json:"category"`
	TotalAmount         decimal.Decimal        `json:"totalAmount"`
	Date                time.Time              `json:"date"`
	ExpenseType         domain.ExpenseType     `json:"expenseType"`
	PaidViaCrossProject bool                   `json:"paidViaCrossProject"`
	PaymentSources      []domain.PaymentSource `json:"paymentSources,omitempty"`
}

// CrossProjectExpenseResponse pairs the recorded expense with the loans it
// created.
type CrossProjectExpenseResponse struct {
	Expense ExpenseResponse `json:"expense"`
	Loans   []LoanResponse  `json:"loans"`
}

// ToExpenseResponse converts a domain expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:           e.ExpenseID,
		ProjectID:           e.ProjectID,
		Description:         e.Description,
		Category:            e.Category,
		TotalAmount:         e.TotalAmount,
		Date:                e.Date,
		ExpenseType:         e.ExpenseType,
		PaidViaCrossProject: e.PaidViaCrossProject,
		PaymentSources:      e.PaymentSources,
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
