package models

import "github.com/shopspring/decimal"

// ProjectWallet represents a row in the project_wallets table.
// project_id carries a unique constraint; initialization relies on it for
// idempotent get-or-create.
type ProjectWallet struct {
	WalletID           string          `db:"wallet_id"`
	ProjectID          string          `db:"project_id"`
	VirtualBalance     decimal.Decimal `db:"virtual_balance"`
	AdvanceReceived    decimal.Decimal `db:"advance_received"`
	PendingDues        decimal.Decimal `db:"pending_dues"`
	TotalLoansGiven    decimal.Decimal `db:"total_loans_given"`
	TotalLoansReceived decimal.Decimal `db:"total_loans_received"`
	AuditFields
}
