package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/buildsite/fundledger/internal/core/domain"
)

func TestProjectWalletNetBalance(t *testing.T) {
	w := domain.ProjectWallet{
		VirtualBalance:     decimal.NewFromInt(50000),
		TotalLoansGiven:    decimal.NewFromInt(12000),
		TotalLoansReceived: decimal.NewFromInt(20000),
	}

	// 50000 - 20000 + 12000
	assert.True(t, w.NetBalance().Equal(decimal.NewFromInt(42000)))
}

func TestWalletDeltaAdd(t *testing.T) {
	a := domain.WalletDelta{
		VirtualBalance:  decimal.NewFromInt(1000),
		AdvanceReceived: decimal.NewFromInt(1000),
	}
	b := domain.WalletDelta{
		VirtualBalance:  decimal.NewFromInt(-400),
		TotalLoansGiven: decimal.NewFromInt(400),
	}

	sum := a.Add(b)

	assert.True(t, sum.VirtualBalance.Equal(decimal.NewFromInt(600)))
	assert.True(t, sum.AdvanceReceived.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sum.TotalLoansGiven.Equal(decimal.NewFromInt(400)))
	assert.True(t, sum.TotalLoansReceived.IsZero())
}

func TestWalletDeltaIsZero(t *testing.T) {
	assert.True(t, domain.WalletDelta{}.IsZero())
	assert.False(t, domain.WalletDelta{PendingDues: decimal.NewFromInt(1)}.IsZero())
}

func TestLoanOutstanding(t *testing.T) {
	loan := domain.CrossProjectLoan{
		Amount:           decimal.NewFromInt(20000),
		SettlementAmount: decimal.NewFromInt(15000),
	}

	assert.True(t, loan.Outstanding().Equal(decimal.NewFromInt(5000)))
}
