package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsite/fundledger/internal/core/domain"
)

func loanForPlan(loanID, lenderID, borrowerID string, amount, settled int64, date time.Time) domain.CrossProjectLoan {
	return domain.CrossProjectLoan{
		LoanID:            loanID,
		LenderProjectID:   lenderID,
		BorrowerProjectID: borrowerID,
		Amount:            decimal.NewFromInt(amount),
		SettlementAmount:  decimal.NewFromInt(settled),
		Status:            domain.LoanActive,
		Date:              date,
	}
}

func TestPlanFIFOSettlement_PartialKeepsLoanActive(t *testing.T) {
	borrower := uuid.NewString()
	lender := uuid.NewString()
	loan := loanForPlan("loan-1", lender, borrower, 20000, 0, time.Now().UTC())

	// 15000 against a 20000 debt: one partial settlement, nothing left over.
	plan := domain.PlanFIFOSettlement([]domain.CrossProjectLoan{loan}, decimal.NewFromInt(15000))

	require.Len(t, plan.Steps, 1)
	assert.True(t, plan.Steps[0].SettlementAmount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, domain.SettlementAutoPartial, plan.Steps[0].SettlementType)
	assert.True(t, plan.RemainingAmount.IsZero())
	assert.True(t, plan.WalletDeltas[lender].VirtualBalance.Equal(decimal.NewFromInt(15000)))
	assert.True(t, plan.WalletDeltas[lender].TotalLoansGiven.Equal(decimal.NewFromInt(-15000)))
	assert.True(t, plan.WalletDeltas[borrower].TotalLoansReceived.Equal(decimal.NewFromInt(-15000)))
	// The borrower's spendable balance is untouched by repayment.
	assert.True(t, plan.WalletDeltas[borrower].VirtualBalance.IsZero())
}

func TestPlanFIFOSettlement_FullSettlementReturnsSurplus(t *testing.T) {
	borrower := uuid.NewString()
	lender := uuid.NewString()
	// 5000 still outstanding of an original 20000.
	loan := loanForPlan("loan-1", lender, borrower, 20000, 15000, time.Now().UTC())

	plan := domain.PlanFIFOSettlement([]domain.CrossProjectLoan{loan}, decimal.NewFromInt(10000))

	require.Len(t, plan.Steps, 1)
	assert.True(t, plan.Steps[0].SettlementAmount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, domain.SettlementAuto, plan.Steps[0].SettlementType)
	assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(5000)))
}

func TestPlanFIFOSettlement_ConsumesOldestFirst(t *testing.T) {
	borrower := uuid.NewString()
	lender := uuid.NewString()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Deliberately out of order; same date on the first two, so the loan ID
	// breaks the tie.
	loans := []domain.CrossProjectLoan{
		loanForPlan("loan-c", lender, borrower, 4000, 0, base.AddDate(0, 0, 2)),
		loanForPlan("loan-b", lender, borrower, 3000, 0, base),
		loanForPlan("loan-a", lender, borrower, 5000, 0, base),
	}

	plan := domain.PlanFIFOSettlement(loans, decimal.NewFromInt(9000))

	require.Len(t, plan.Steps, 3)
	assert.Equal(t, "loan-a", plan.Steps[0].Loan.LoanID)
	assert.Equal(t, domain.SettlementAuto, plan.Steps[0].SettlementType)
	assert.Equal(t, "loan-b", plan.Steps[1].Loan.LoanID)
	assert.Equal(t, domain.SettlementAuto, plan.Steps[1].SettlementType)
	// 9000 - 5000 - 3000 leaves 1000 for the newest loan.
	assert.Equal(t, "loan-c", plan.Steps[2].Loan.LoanID)
	assert.Equal(t, domain.SettlementAutoPartial, plan.Steps[2].SettlementType)
	assert.True(t, plan.Steps[2].SettlementAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, plan.RemainingAmount.IsZero())
}

func TestPlanFIFOSettlement_NeverExceedsOutstandingOrAvailable(t *testing.T) {
	borrower := uuid.NewString()
	lender := uuid.NewString()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	loans := []domain.CrossProjectLoan{
		loanForPlan("loan-a", lender, borrower, 5000, 2000, base),
		loanForPlan("loan-b", lender, borrower, 8000, 0, base.AddDate(0, 0, 1)),
	}
	available := decimal.NewFromInt(7000)

	plan := domain.PlanFIFOSettlement(loans, available)

	spent := decimal.Zero
	for _, step := range plan.Steps {
		assert.True(t, step.SettlementAmount.LessThanOrEqual(step.Loan.Outstanding()),
			"settlement must not exceed the loan's outstanding balance")
		spent = spent.Add(step.SettlementAmount)
	}
	assert.True(t, spent.LessThanOrEqual(available))
	assert.True(t, spent.Add(plan.RemainingAmount).Equal(available))
}

func TestPlanFIFOSettlement_SkipsSettledAndRepaidLoans(t *testing.T) {
	borrower := uuid.NewString()
	lender := uuid.NewString()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	settled := loanForPlan("loan-a", lender, borrower, 5000, 5000, base)
	settled.Status = domain.LoanSettled
	repaid := loanForPlan("loan-b", lender, borrower, 3000, 3000, base)
	open := loanForPlan("loan-c", lender, borrower, 2000, 0, base.AddDate(0, 0, 1))

	plan := domain.PlanFIFOSettlement([]domain.CrossProjectLoan{settled, repaid, open}, decimal.NewFromInt(10000))

	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "loan-c", plan.Steps[0].Loan.LoanID)
	assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(8000)))
}

func TestPlanFIFOSettlement_NoActiveLoans(t *testing.T) {
	plan := domain.PlanFIFOSettlement(nil, decimal.NewFromInt(5000))

	assert.Empty(t, plan.Steps)
	assert.Empty(t, plan.WalletDeltas)
	assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(5000)))
}

func TestPlanFIFOSettlement_DeltasConserveLoanTotals(t *testing.T) {
	borrower := uuid.NewString()
	lenderA := uuid.NewString()
	lenderB := uuid.NewString()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	loans := []domain.CrossProjectLoan{
		loanForPlan("loan-a", lenderA, borrower, 6000, 0, base),
		loanForPlan("loan-b", lenderB, borrower, 4000, 0, base.AddDate(0, 0, 1)),
	}

	plan := domain.PlanFIFOSettlement(loans, decimal.NewFromInt(8000))

	// Every unit shaved off loans-given must come off loans-received too.
	givenDrop := decimal.Zero
	receivedDrop := decimal.Zero
	for _, delta := range plan.WalletDeltas {
		givenDrop = givenDrop.Add(delta.TotalLoansGiven)
		receivedDrop = receivedDrop.Add(delta.TotalLoansReceived)
	}
	assert.True(t, givenDrop.Equal(receivedDrop))
	assert.True(t, givenDrop.Equal(decimal.NewFromInt(-8000)))
}
