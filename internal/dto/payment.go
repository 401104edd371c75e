package dto

import (
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationEntry is one (project, amount) split of a client payment.
type AllocationEntry struct {
	ProjectID   string          `json:"projectID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// AllocatePaymentRequest creates a client payment and splits it across
// project wallets. The allocation amounts must sum to totalAmount.
type AllocatePaymentRequest struct {
	TotalAmount decimal.Decimal   `json:"totalAmount" binding:"required"`
	Allocations []AllocationEntry `json:"allocations" binding:"required,min=1,dive"`
	PaymentDate time.Time         `json:"paymentDate" binding:"required"`
	From        string            `json:"from"`
	ReceivedBy  string            `json:"receivedBy"`
	Method      string            `json:"method"`
	Notes       string            `json:"notes"`
}

// AllocateExistingPaymentRequest splits a previously recorded payment across
// project wallets and marks it allocated.
type AllocateExistingPaymentRequest struct {
	Allocations []AllocationEntry `json:"allocations" binding:"required,min=1,dive"`
	Notes       string            `json:"notes"`
}

// PaymentResponse mirrors domain.ClientPayment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	ProjectID       string          `json:"projectID"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"paymentDate"`
	From            string          `json:"from"`
	ReceivedBy      string          `json:"receivedBy"`
	Method          string          `json:"method"`
	Notes           string          `json:"notes"`
	IsMultiProject  bool            `json:"isMultiProject"`
	IsAllocated     bool            `json:"isAllocated"`
	AllocationDate  *time.Time      `json:"allocationDate,omitempty"`
	AllocationNotes string          `json:"allocationNotes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AllocationResponse mirrors domain.PaymentAllocation.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	ProjectID    string          `json:"projectID"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
}

// PaymentWithAllocationsResponse pairs a payment with its allocation rows.
type PaymentWithAllocationsResponse struct {
	Payment     PaymentResponse      `json:"payment"`
	Allocations []AllocationResponse `json:"allocations"`
}

// ToPaymentResponse converts a domain payment to its response DTO.
func ToPaymentResponse(p *domain.ClientPayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		ProjectID:       p.ProjectID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		From:            p.From,
		ReceivedBy:      p.ReceivedBy,
		Method:          p.Method,
		Notes:           p.Notes,
		IsMultiProject:  p.IsMultiProject,
		IsAllocated:     p.IsAllocated,
		AllocationDate:  p.AllocationDate,
		AllocationNotes: p.AllocationNotes,
		CreatedAt:       p.CreatedAt,
	}
}

// ToAllocationResponses converts domain allocations to response DTOs.
func ToAllocationResponses(allocs []domain.PaymentAllocation) []AllocationResponse {
	res := make([]AllocationResponse, len(allocs))
	for i, a := range allocs {
		res[i] = AllocationResponse{
			AllocationID: a.AllocationID,
			PaymentID:    a.PaymentID,
			ProjectID:    a.ProjectID,
			Amount:       a.Amount,
			Description:  a.Description,
			Date:         a.Date,
		}
	}
	return res
}
