package repositories

import (
	"context"

	"github.com/buildsite/fundledger/internal/core/domain"
)

// PaymentReader defines read operations for client payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a client payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.ClientPayment, error)

	// ListPaymentsByProject retrieves payments recorded against a project.
	ListPaymentsByProject(ctx context.Context, projectID string) ([]domain.ClientPayment, error)
}

// PaymentWriter defines write operations for client payment data that do not
// touch wallets. Wallet-affecting payment flows go through FundRepository.
type PaymentWriter interface {
	// SavePayment persists a new client payment record.
	SavePayment(ctx context.Context, payment domain.ClientPayment) error
}

// AllocationReader defines read operations for payment allocation data.
type AllocationReader interface {
	// FindAllocationsByPayment retrieves all allocations of one payment.
	FindAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)

	// FindAllocationsByProject retrieves all allocations credited to a project.
	FindAllocationsByProject(ctx context.Context, projectID string) ([]domain.PaymentAllocation, error)
}

// PaymentRepositoryFacade combines payment and allocation repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
	AllocationReader
}
