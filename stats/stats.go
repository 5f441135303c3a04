// Package stats derives comparable performance metrics from a snapshot of
// the network's raw activity data. All functions are pure: they read the
// snapshot, mutate nothing, and are safe to call repeatedly.
package stats

import (
	"franquia-backend/models"
)

// Health score normalization targets. Each denominator represents "good"
// monthly performance for its dimension; the final clamp is the only cap,
// so a strong dimension can compensate for a weak one before saturating.
const (
	profitTarget     = 50000.0
	conversionTarget = 0.25
	revenueTarget    = 200000.0

	profitWeight     = 40.0
	conversionWeight = 40.0
	revenueWeight    = 20.0
)

// Health tier labels, inclusive on the lower bound.
const (
	TierExcellent      = "Excellent"
	TierOnTarget       = "On Target"
	TierNeedsAttention = "Needs Attention"
)

type FranchiseStats struct {
	Franchise           models.Franchise `json:"franchise"`
	ConsortiumSales     float64          `json:"consortium_sales"`
	CreditRecoveryCases int              `json:"credit_recovery_cases"`
	Profit              float64          `json:"profit"`
	ConversionRate      float64          `json:"conversion_rate"`
	HealthScore         float64          `json:"health_score"`
	Status              string           `json:"status"`
}

type NetworkStats struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalProfit        float64 `json:"total_profit"`
	AverageHealthScore float64 `json:"average_health_score"`
}

// For computes the derived stats for a single franchise. Records referencing
// a franchise id not present in the snapshot simply contribute nothing.
func For(f models.Franchise, snap models.Snapshot) FranchiseStats {
	var consortiumSales float64
	for _, co := range snap.Consortiums {
		if co.FranchiseID == f.ID {
			consortiumSales += co.Value
		}
	}

	var income, expense float64
	for _, t := range snap.Transactions {
		if t.FranchiseID != f.ID {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			income += t.Amount
		case models.TransactionExpense:
			expense += t.Amount
		}
	}
	profit := income - expense

	var totalLeads, wonLeads int
	for _, l := range snap.Leads {
		if l.FranchiseID != f.ID {
			continue
		}
		totalLeads++
		if l.Status == models.LeadStatusWon {
			wonLeads++
		}
	}
	conversionRate := 0.0
	if totalLeads > 0 {
		conversionRate = float64(wonLeads) / float64(totalLeads)
	}

	var recoveryCases int
	for _, cr := range snap.CreditRecoveryCases {
		if cr.FranchiseID == f.ID {
			recoveryCases++
		}
	}

	score := healthScore(profit, conversionRate, consortiumSales)

	return FranchiseStats{
		Franchise:           f,
		ConsortiumSales:     consortiumSales,
		CreditRecoveryCases: recoveryCases,
		Profit:              profit,
		ConversionRate:      conversionRate,
		HealthScore:         score,
		Status:              tierFor(score),
	}
}

// ForAll computes stats for every franchise in the snapshot, in snapshot order.
func ForAll(snap models.Snapshot) []FranchiseStats {
	all := make([]FranchiseStats, 0, len(snap.Franchises))
	for _, f := range snap.Franchises {
		all = append(all, For(f, snap))
	}
	return all
}

// Network rolls up per-franchise stats. The average over zero franchises is 0.
func Network(all []FranchiseStats) NetworkStats {
	var ns NetworkStats
	for _, fs := range all {
		ns.TotalRevenue += fs.ConsortiumSales
		ns.TotalProfit += fs.Profit
		ns.AverageHealthScore += fs.HealthScore
	}
	if len(all) > 0 {
		ns.AverageHealthScore /= float64(len(all))
	}
	return ns
}

func healthScore(profit, conversionRate, consortiumSales float64) float64 {
	score := (profit/profitTarget)*profitWeight +
		(conversionRate/conversionTarget)*conversionWeight +
		(consortiumSales/revenueTarget)*revenueWeight
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func tierFor(score float64) string {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 50:
		return TierOnTarget
	default:
		return TierNeedsAttention
	}
}
