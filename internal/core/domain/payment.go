package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MultiProjectMarker is the projectID stored on client payments that are
// split across several projects rather than belonging to a single one.
const MultiProjectMarker = "MULTI_PROJECT"

// ClientPayment is a payment received from a client. A payment either belongs
// to a single project or carries the MultiProjectMarker and is split across
// projects via PaymentAllocation records.
type ClientPayment struct {
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
	AuditFields
}

// PaymentAllocation assigns a portion of one client payment to one project's
// wallet. Immutable once created; deleting the parent payment reverses the
// wallet credit and removes the allocation in the same transaction.
type PaymentAllocation struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	ProjectID    string          `json:"projectID"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	AuditFields
}
