package dto

import (
	"time"

	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletBalanceResponse is the snapshot returned for a project's wallet.
// NetBalance is derived: virtualBalance - totalLoansReceived + totalLoansGiven.
type WalletBalanceResponse struct {
	ProjectID          string          `json:"projectID"`
	VirtualBalance     decimal.Decimal `json:"virtualBalance"`
	AdvanceReceived    decimal.Decimal `json:"advanceReceived"`
	PendingDues        decimal.Decimal `json:"pendingDues"`
	TotalLoansGiven    decimal.Decimal `json:"totalLoansGiven"`
	TotalLoansReceived decimal.Decimal `json:"totalLoansReceived"`
	NetBalance         decimal.Decimal `json:"netBalance"`
	LastUpdated        time.Time       `json:"lastUpdated"`
}

// ToWalletBalanceResponse converts a domain wallet to its balance snapshot.
func ToWalletBalanceResponse(w *domain.ProjectWallet) WalletBalanceResponse {
	return WalletBalanceResponse{
		ProjectID:          w.ProjectID,
		VirtualBalance:     w.VirtualBalance,
		AdvanceReceived:    w.AdvanceReceived,
		PendingDues:        w.PendingDues,
		TotalLoansGiven:    w.TotalLoansGiven,
		TotalLoansReceived: w.TotalLoansReceived,
		NetBalance:         w.NetBalance(),
		LastUpdated:        w.LastUpdatedAt,
	}
}
