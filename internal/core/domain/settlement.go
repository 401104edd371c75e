package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SettlementType distinguishes how a settlement came about.
type SettlementType string

const (
	SettlementAuto        SettlementType = "AUTO"
	SettlementAutoPartial SettlementType = "AUTO_PARTIAL"
	SettlementManual      SettlementType = "MANUAL"
)

// SettlementRecord is the append-only audit trail of loan repayments, one
// row per settlement action (full, partial, or manual). Never mutated.
type SettlementRecord struct {
	SettlementID      string          `json:"settlementID"`
	LoanID            string          `json:"loanID"`
	LenderProjectID   string          `json:"lenderProjectID"`
	BorrowerProjectID string          `json:"borrowerProjectID"`
	Amount            decimal.Decimal `json:"amount"`
	SettlementDate    time.Time       `json:"settlementDate"`
	SettlementType    SettlementType  `json:"settlementType"`
	Notes             string          `json:"notes"`
	AuditFields
}

// SettledLoan pairs a loan with the amount applied to it by one settlement
// pass.
type SettledLoan struct {
	Loan             CrossProjectLoan `json:"loan"`
	SettlementAmount decimal.Decimal  `json:"settlementAmount"`
}

// SettlementOutcome is the result of an auto-settlement run. RemainingAmount
// is the unspent surplus once all reachable debt is retired.
type SettlementOutcome struct {
	SettledLoans    []SettledLoan   `json:"settledLoans"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

// ManualSettlementResult is the result of settling a single loan directly.
type ManualSettlementResult struct {
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	FullySettled     bool            `json:"fullySettled"`
}

// LoanSettlementStep is one planned settlement action against a single loan.
type LoanSettlementStep struct {
	Loan             CrossProjectLoan
	SettlementAmount decimal.Decimal
	SettlementType   SettlementType
}

// SettlementPlan is the pure outcome of planning an auto-settlement run:
// which loans to touch, by how much, the wallet deltas that repay the
// lenders, and the surplus left once all reachable debt is retired.
type SettlementPlan struct {
	Steps           []LoanSettlementStep
	WalletDeltas    map[string]WalletDelta
	RemainingAmount decimal.Decimal
}

// PlanFIFOSettlement decides how an available amount is consumed against a
// borrower's active loans: oldest first (loan date ascending, loan ID as
// tie-break), each loan retired in full (AUTO) while funds cover its
// outstanding balance, the last loan touched settled partially
// (AUTO_PARTIAL) when they don't. Loans that are not active or carry no
// outstanding balance are skipped. The input slice is not mutated.
func PlanFIFOSettlement(loans []CrossProjectLoan, available decimal.Decimal) SettlementPlan {
	ordered := make([]CrossProjectLoan, len(loans))
	copy(ordered, loans)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].LoanID < ordered[j].LoanID
	})

	plan := SettlementPlan{
		Steps:           []LoanSettlementStep{},
		WalletDeltas:    make(map[string]WalletDelta),
		RemainingAmount: available,
	}

	remaining := available
	for _, loan := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if loan.Status != LoanActive {
			continue
		}
		outstanding := loan.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}

		var settlementAmount decimal.Decimal
		var settlementType SettlementType
		if remaining.GreaterThanOrEqual(outstanding) {
			settlementAmount = outstanding
			settlementType = SettlementAuto
		} else {
			settlementAmount = remaining
			settlementType = SettlementAutoPartial
		}
		remaining = remaining.Sub(settlementAmount)

		plan.Steps = append(plan.Steps, LoanSettlementStep{
			Loan:             loan,
			SettlementAmount: settlementAmount,
			SettlementType:   settlementType,
		})
		plan.WalletDeltas[loan.LenderProjectID] = plan.WalletDeltas[loan.LenderProjectID].Add(WalletDelta{
			VirtualBalance:  settlementAmount,
			TotalLoansGiven: settlementAmount.Neg(),
		})
		plan.WalletDeltas[loan.BorrowerProjectID] = plan.WalletDeltas[loan.BorrowerProjectID].Add(WalletDelta{
			TotalLoansReceived: settlementAmount.Neg(),
		})
	}
	plan.RemainingAmount = remaining
	return plan
}
