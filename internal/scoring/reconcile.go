package scoring

import (
	"math"
	"strings"
)

type ReconciliationIssue string

const (
	IssueAmountMismatch  ReconciliationIssue = "amount_mismatch"
	IssueNoMatchingLease ReconciliationIssue = "no_matching_lease"
)

// toleranceEpsilon absorbs float error so a variance of exactly the tolerance reconciles.
const toleranceEpsilon = 1e-9

type ReconciliationResult struct {
	TransactionID string              `json:"transaction_id"`
	PropertyID    string              `json:"property_id"`
	TenantName    string              `json:"tenant_name"`
	Reconciled    bool                `json:"reconciled"`
	LeaseID       string              `json:"lease_id,omitempty"`
	Issue         ReconciliationIssue `json:"issue,omitempty"`
	Expected      *float64            `json:"expected,omitempty"`
	Actual        float64             `json:"actual"`
	// VariancePct is |actual-expected| as a percentage of expected.
	VariancePct *float64 `json:"variance_pct,omitempty"`
}

type TransactionRisk struct {
	TransactionID   string    `json:"transaction_id"`
	Score           float64   `json:"score"`
	Level           RiskLevel `json:"level"`
	DaysLate        int       `json:"days_late"`
	LatePenalty     float64   `json:"late_penalty"`
	VariancePenalty float64   `json:"variance_penalty"`
	TypePenalty     float64   `json:"type_penalty"`
}

type ReconciliationReport struct {
	TotalTransactions  int                    `json:"total_transactions"`
	Reconciled         int                    `json:"reconciled"`
	Flagged            int                    `json:"flagged"`
	ReconciliationRate float64                `json:"reconciliation_rate"`
	HighRiskCount      int                    `json:"high_risk_count"`
	Results            []ReconciliationResult `json:"results"`
	Risks              []TransactionRisk      `json:"risks"`
	Recommendations    []string               `json:"recommendations"`
}

var reconciliationRecommendations = []string{
	"Review flagged transactions against the signed lease schedule",
	"Contact tenants with late or mismatched payments",
	"Automate rent collection reminders ahead of due dates",
}

func matchLease(tx Transaction, leases []Lease) (Lease, bool) {
	tenant := strings.ToLower(strings.TrimSpace(tx.TenantName))
	for _, l := range leases {
		if l.PropertyID == tx.PropertyID && strings.ToLower(strings.TrimSpace(l.TenantName)) == tenant {
			return l, true
		}
	}
	return Lease{}, false
}

// ReconcileTransaction checks tx against the first lease for the same property
// and tenant. Amounts within the tolerance share of monthly rent, inclusive, reconcile.
func (e *Engine) ReconcileTransaction(tx Transaction, leases []Lease) ReconciliationResult {
	res := ReconciliationResult{
		TransactionID: tx.ID,
		PropertyID:    tx.PropertyID,
		TenantName:    tx.TenantName,
		Actual:        tx.Amount,
	}
	lease, ok := matchLease(tx, leases)
	if !ok {
		res.Issue = IssueNoMatchingLease
		return res
	}
	res.LeaseID = lease.ID
	diff := math.Abs(tx.Amount - lease.MonthlyRent)
	if diff <= e.cfg.Transactions.ReconciliationTolerance*lease.MonthlyRent+toleranceEpsilon {
		res.Reconciled = true
		return res
	}
	expected := lease.MonthlyRent
	res.Issue = IssueAmountMismatch
	res.Expected = &expected
	if expected > 0 {
		pct := round2(diff / expected * 100)
		res.VariancePct = &pct
	}
	return res
}

// TransactionRisk adds lateness, variance against the expected amount and a
// per-type penalty, capped at 100.
func (e *Engine) TransactionRisk(tx Transaction) TransactionRisk {
	cfg := e.cfg.Transactions
	r := TransactionRisk{TransactionID: tx.ID}

	if tx.DueDate != nil && tx.OccurredAt.After(*tx.DueDate) {
		r.DaysLate = wholeDays(*tx.DueDate, tx.OccurredAt)
		r.LatePenalty = math.Min(cfg.LatePenaltyCap, float64(r.DaysLate)*cfg.LatePenaltyPerDay)
	}
	if tx.ExpectedAmount != nil && *tx.ExpectedAmount > 0 {
		pct := math.Abs(tx.Amount-*tx.ExpectedAmount) / *tx.ExpectedAmount * 100
		r.VariancePenalty = math.Min(cfg.VariancePenaltyCap, pct*cfg.VariancePenaltyPerPct)
	}
	r.TypePenalty = cfg.TypePenalties[strings.ToLower(strings.TrimSpace(tx.Type))]

	r.Score = round2(math.Min(100, r.LatePenalty+r.VariancePenalty+r.TypePenalty))
	r.VariancePenalty = round2(r.VariancePenalty)
	switch {
	case r.Score > cfg.HighRiskAbove:
		r.Level = RiskHigh
	case r.Score > cfg.MediumRiskAbove:
		r.Level = RiskMedium
	default:
		r.Level = RiskLow
	}
	return r
}

// Reconcile runs ReconcileTransaction and TransactionRisk over every transaction.
// A transaction without its own expected amount is risk-scored against the rent
// of its matched lease.
func (e *Engine) Reconcile(txs []Transaction, leases []Lease) ReconciliationReport {
	rep := ReconciliationReport{
		TotalTransactions: len(txs),
		Results:           make([]ReconciliationResult, 0, len(txs)),
		Risks:             make([]TransactionRisk, 0, len(txs)),
		Recommendations:   append([]string(nil), reconciliationRecommendations...),
	}
	for _, tx := range txs {
		res := e.ReconcileTransaction(tx, leases)
		rep.Results = append(rep.Results, res)
		if res.Reconciled {
			rep.Reconciled++
		} else {
			rep.Flagged++
		}

		if tx.ExpectedAmount == nil {
			if lease, ok := matchLease(tx, leases); ok {
				rent := lease.MonthlyRent
				tx.ExpectedAmount = &rent
			}
		}
		risk := e.TransactionRisk(tx)
		rep.Risks = append(rep.Risks, risk)
		if risk.Level == RiskHigh {
			rep.HighRiskCount++
		}
	}
	if len(txs) > 0 {
		rep.ReconciliationRate = round2(float64(rep.Reconciled) / float64(len(txs)) * 100)
	}
	return rep
}
