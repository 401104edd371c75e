package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectWallet is the per-project virtual balance record, created lazily on
// first use. Wallets are mutated only through increment deltas, never
// overwritten wholesale.
type ProjectWallet struct {
	WalletID           string          `json:"walletID"`
	ProjectID          string          `json:"projectID"`
	VirtualBalance     decimal.Decimal `json:"virtualBalance"`
	AdvanceReceived    decimal.Decimal `json:"advanceReceived"`
	PendingDues        decimal.Decimal `json:"pendingDues"`
	TotalLoansGiven    decimal.Decimal `json:"totalLoansGiven"`
	TotalLoansReceived decimal.Decimal `json:"totalLoansReceived"`
	AuditFields
}

// NetBalance is the true spendable amount:
// virtualBalance - totalLoansReceived + totalLoansGiven.
func (w ProjectWallet) NetBalance() decimal.Decimal {
	return w.VirtualBalance.Sub(w.TotalLoansReceived).Add(w.TotalLoansGiven)
}

// WalletDelta describes increments (possibly negative) to apply to a wallet's
// counters. Zero-valued fields leave the corresponding counter untouched.
type WalletDelta struct {
	VirtualBalance     decimal.Decimal
	AdvanceReceived    decimal.Decimal
	PendingDues        decimal.Decimal
	TotalLoansGiven    decimal.Decimal
	TotalLoansReceived decimal.Decimal
}

// Add merges two deltas counter-wise.
func (d WalletDelta) Add(o WalletDelta) WalletDelta {
	return WalletDelta{
		VirtualBalance:     d.VirtualBalance.Add(o.VirtualBalance),
		AdvanceReceived:    d.AdvanceReceived.Add(o.AdvanceReceived),
		PendingDues:        d.PendingDues.Add(o.PendingDues),
		TotalLoansGiven:    d.TotalLoansGiven.Add(o.TotalLoansGiven),
		TotalLoansReceived: d.TotalLoansReceived.Add(o.TotalLoansReceived),
	}
}

// IsZero reports whether the delta would leave a wallet unchanged.
func (d WalletDelta) IsZero() bool {
	return d.VirtualBalance.IsZero() &&
		d.AdvanceReceived.IsZero() &&
		d.PendingDues.IsZero() &&
		d.TotalLoansGiven.IsZero() &&
		d.TotalLoansReceived.IsZero()
}
