package services

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/dto"
)

// PaymentAllocatorSvcFacade exposes payment allocation operations.
type PaymentAllocatorSvcFacade interface {
	// AllocatePayment validates that the allocation breakdown sums to the
	// payment total, then creates the payment record, the allocations, and
	// the wallet credits in one transaction.
	AllocatePayment(ctx context.Context, req dto.AllocatePaymentRequest, userID string) (*domain.ClientPayment, error)

	// AllocateExistingPayment performs the same allocation against a payment
	// record created earlier by another collaborator, marking it allocated.
	AllocateExistingPayment(ctx context.Context, paymentID string, req dto.AllocateExistingPaymentRequest, userID string) (*domain.ClientPayment, error)

	// DeletePayment removes a payment; if it was allocated, each allocation's
	// wallet credit is reversed in the same transaction.
	DeletePayment(ctx context.Context, paymentID string, userID string) error

	// GetPayment retrieves a payment with its allocations.
	GetPayment(ctx context.Context, paymentID string) (*domain.ClientPayment, []domain.PaymentAllocation, error)
}
