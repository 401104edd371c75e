package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementType mirrors domain.SettlementType at the storage layer.
type SettlementType string

// SettlementRecord represents a row in the settlement_records table.
// Append-only; rows are never updated or deleted.
type SettlementRecord struct {
	SettlementID      string          `db:"settlement_id"`
	LoanID            string          `db:"loan_id"`
	LenderProjectID   string          `db:"lender_project_id"`
	BorrowerProjectID string          `db:"borrower_project_id"`
	Amount            decimal.Decimal `db:"amount"`
	SettlementDate    time.Time       `db:"settlement_date"`
	SettlementType    SettlementType  `db:"settlement_type"`
	Notes             string          `db:"notes"`
	AuditFields
}
