package mapping

import (
	"github.com/buildsite/fundledger/internal/core/domain"
	"github.com/buildsite/fundledger/internal/models"
)

// ToModelWallet converts a domain ProjectWallet to a model ProjectWallet.
func ToModelWallet(d domain.ProjectWallet) models.ProjectWallet {
	return models.ProjectWallet{
		WalletID:           d.WalletID,
		ProjectID:          d.ProjectID,
		VirtualBalance:     d.VirtualBalance,
		AdvanceReceived:    d.AdvanceReceived,
		PendingDues:        d.PendingDues,
		TotalLoansGiven:    d.TotalLoansGiven,
		TotalLoansReceived: d.TotalLoansReceived,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model ProjectWallet to a domain ProjectWallet.
func ToDomainWallet(m models.ProjectWallet) domain.ProjectWallet {
	return domain.ProjectWallet{
		WalletID:           m.WalletID,
		ProjectID:          m.ProjectID,
		VirtualBalance:     m.VirtualBalance,
		AdvanceReceived:    m.AdvanceReceived,
		PendingDues:        m.PendingDues,
		TotalLoansGiven:    m.TotalLoansGiven,
		TotalLoansReceived: m.TotalLoansReceived,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWalletSlice converts a slice of model wallets to domain wallets.
func ToDomainWalletSlice(ms []models.ProjectWallet) []domain.ProjectWallet {
	ds := make([]domain.ProjectWallet, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWallet(m)
	}
	return ds
}
