package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientPayment represents a row in the client_payments table.
type ClientPayment struct {
	PaymentID       string          `db:"payment_id"`
	ProjectID       string          `db:"project_id"`
	Amount          decimal.Decimal `db:"amount"`
	PaymentDate     time.Time       `db:"payment_date"`
	PaidFrom        string          `db:"paid_from"`
	ReceivedBy      string          `db:"received_by"`
	Method          string          `db:"method"`
	Notes           string          `db:"notes"`
	IsMultiProject  bool            `db:"is_multi_project"`
	IsAllocated     bool            `db:"is_allocated"`
	AllocationDate  *time.Time      `db:"allocation_date"`
	AllocationNotes string          `db:"allocation_notes"`
	AuditFields
}

// PaymentAllocation represents a row in the payment_allocations table.
type PaymentAllocation struct {
	AllocationID string          `db:"allocation_id"`
	PaymentID    string          `db:"payment_id"`
	ProjectID    string          `db:"project_id"`
	Amount       decimal.Decimal `db:"amount"`
	Description  string          `db:"description"`
	Date         time.Time       `db:"allocation_date"`
	AuditFields
}
