package stats

import (
	"math"
	"testing"
	"time"

	"franquia-backend/models"

	"github.com/google/uuid"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func newFranchise(name string) models.Franchise {
	return models.Franchise{ID: uuid.New(), Name: name, OwnerID: uuid.New()}
}

func incomeTx(fID uuid.UUID, amount float64) models.Transaction {
	return models.Transaction{ID: uuid.New(), FranchiseID: fID, Amount: amount, Type: models.TransactionIncome, Date: time.Now()}
}

func expenseTx(fID uuid.UUID, amount float64) models.Transaction {
	return models.Transaction{ID: uuid.New(), FranchiseID: fID, Amount: amount, Type: models.TransactionExpense, Date: time.Now()}
}

func lead(fID uuid.UUID, status models.LeadStatus) models.Lead {
	return models.Lead{ID: uuid.New(), FranchiseID: fID, ClientID: uuid.New(), Status: status}
}

func consortium(fID uuid.UUID, value float64) models.Consortium {
	return models.Consortium{ID: uuid.New(), FranchiseID: fID, ClientID: uuid.New(), Value: value}
}

func TestForWorkedExample(t *testing.T) {
	f := newFranchise("Unit A")
	snap := models.Snapshot{
		Franchises: []models.Franchise{f},
		Transactions: []models.Transaction{
			incomeTx(f.ID, 60000),
			expenseTx(f.ID, 20000),
		},
		Consortiums: []models.Consortium{
			consortium(f.ID, 100000),
		},
		Leads: []models.Lead{
			lead(f.ID, models.LeadStatusWon),
			lead(f.ID, models.LeadStatusWon),
			lead(f.ID, models.LeadStatusWon),
			lead(f.ID, models.LeadStatusLost),
			lead(f.ID, models.LeadStatusLost),
			lead(f.ID, models.LeadStatusNew),
			lead(f.ID, models.LeadStatusNew),
			lead(f.ID, models.LeadStatusContacted),
			lead(f.ID, models.LeadStatusContacted),
			lead(f.ID, models.LeadStatusNegotiating),
		},
	}

	fs := For(f, snap)

	if !approxEqual(fs.Profit, 40000) {
		t.Errorf("Profit = %v, want 40000", fs.Profit)
	}
	if !approxEqual(fs.ConsortiumSales, 100000) {
		t.Errorf("ConsortiumSales = %v, want 100000", fs.ConsortiumSales)
	}
	if !approxEqual(fs.ConversionRate, 0.3) {
		t.Errorf("ConversionRate = %v, want 0.3", fs.ConversionRate)
	}
	// (40000/50000)*40 + (0.3/0.25)*40 + (100000/200000)*20 = 32 + 48 + 10 = 90
	if !approxEqual(fs.HealthScore, 90) {
		t.Errorf("HealthScore = %v, want 90", fs.HealthScore)
	}
	if fs.Status != TierExcellent {
		t.Errorf("Status = %q, want %q", fs.Status, TierExcellent)
	}
}

func TestForZeroActivity(t *testing.T) {
	f := newFranchise("Empty Unit")
	snap := models.Snapshot{Franchises: []models.Franchise{f}}

	fs := For(f, snap)

	if fs.HealthScore != 0 {
		t.Errorf("HealthScore = %v, want 0", fs.HealthScore)
	}
	if fs.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0 with no leads", fs.ConversionRate)
	}
	if fs.Status != TierNeedsAttention {
		t.Errorf("Status = %q, want %q", fs.Status, TierNeedsAttention)
	}
}

func TestForConversionRateZeroWhenNoLeads(t *testing.T) {
	f := newFranchise("No Leads")
	snap := models.Snapshot{
		Franchises:   []models.Franchise{f},
		Transactions: []models.Transaction{incomeTx(f.ID, 100000)},
	}

	fs := For(f, snap)
	if fs.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0 (no division by zero)", fs.ConversionRate)
	}
}

func TestHealthScoreClampedAt100(t *testing.T) {
	f := newFranchise("Overachiever")
	snap := models.Snapshot{
		Franchises:   []models.Franchise{f},
		Transactions: []models.Transaction{incomeTx(f.ID, 1000000)},
		Consortiums:  []models.Consortium{consortium(f.ID, 5000000)},
		Leads:        []models.Lead{lead(f.ID, models.LeadStatusWon)},
	}

	fs := For(f, snap)
	if fs.HealthScore != 100 {
		t.Errorf("HealthScore = %v, want clamp at 100", fs.HealthScore)
	}
	if fs.Status != TierExcellent {
		t.Errorf("Status = %q, want %q", fs.Status, TierExcellent)
	}
}

func TestHealthScoreClampedAtZero(t *testing.T) {
	f := newFranchise("Deep Loss")
	snap := models.Snapshot{
		Franchises:   []models.Franchise{f},
		Transactions: []models.Transaction{expenseTx(f.ID, 500000)},
	}

	fs := For(f, snap)
	if fs.HealthScore != 0 {
		t.Errorf("HealthScore = %v, want clamp at 0", fs.HealthScore)
	}
}

// A strong dimension compensates a weak one before the single final clamp.
func TestHealthScoreDimensionsCompensate(t *testing.T) {
	f := newFranchise("Mixed")
	snap := models.Snapshot{
		Franchises: []models.Franchise{f},
		// Double the profit target while revenue and conversion sit at zero.
		Transactions: []models.Transaction{incomeTx(f.ID, 100000)},
	}

	fs := For(f, snap)
	// (100000/50000)*40 = 80, not clamped per-dimension to 40.
	if !approxEqual(fs.HealthScore, 80) {
		t.Errorf("HealthScore = %v, want 80", fs.HealthScore)
	}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, TierExcellent},
		{80, TierExcellent},
		{79.999, TierOnTarget},
		{50, TierOnTarget},
		{49.999, TierNeedsAttention},
		{0, TierNeedsAttention},
	}

	for _, tt := range tests {
		if got := tierFor(tt.score); got != tt.want {
			t.Errorf("tierFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestForIgnoresOtherFranchises(t *testing.T) {
	a := newFranchise("Unit A")
	b := newFranchise("Unit B")
	snap := models.Snapshot{
		Franchises: []models.Franchise{a, b},
		Transactions: []models.Transaction{
			incomeTx(a.ID, 10000),
			incomeTx(b.ID, 99999),
		},
		Consortiums: []models.Consortium{
			consortium(b.ID, 500000),
		},
		Leads: []models.Lead{
			lead(b.ID, models.LeadStatusWon),
		},
	}

	fs := For(a, snap)
	if !approxEqual(fs.Profit, 10000) {
		t.Errorf("Profit = %v, want 10000 (only unit A's rows)", fs.Profit)
	}
	if fs.ConsortiumSales != 0 {
		t.Errorf("ConsortiumSales = %v, want 0", fs.ConsortiumSales)
	}
	if fs.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, want 0", fs.ConversionRate)
	}
}

func TestForIgnoresNetworkLevelTransactions(t *testing.T) {
	f := newFranchise("Unit A")
	snap := models.Snapshot{
		Franchises: []models.Franchise{f},
		Transactions: []models.Transaction{
			incomeTx(f.ID, 5000),
			incomeTx(models.NetworkFranchiseID, 77777),
		},
	}

	fs := For(f, snap)
	if !approxEqual(fs.Profit, 5000) {
		t.Errorf("Profit = %v, want 5000 (network rows excluded)", fs.Profit)
	}
}

func TestForIsIdempotent(t *testing.T) {
	f := newFranchise("Unit A")
	snap := models.Snapshot{
		Franchises:   []models.Franchise{f},
		Transactions: []models.Transaction{incomeTx(f.ID, 30000), expenseTx(f.ID, 10000)},
		Leads:        []models.Lead{lead(f.ID, models.LeadStatusWon), lead(f.ID, models.LeadStatusLost)},
		Consortiums:  []models.Consortium{consortium(f.ID, 50000)},
	}

	first := For(f, snap)
	second := For(f, snap)

	if first.HealthScore != second.HealthScore || first.Profit != second.Profit ||
		first.ConversionRate != second.ConversionRate || first.ConsortiumSales != second.ConsortiumSales {
		t.Errorf("For is not idempotent: %+v vs %+v", first, second)
	}
}

func TestForCountsRecoveryCases(t *testing.T) {
	f := newFranchise("Unit A")
	other := newFranchise("Unit B")
	snap := models.Snapshot{
		Franchises: []models.Franchise{f, other},
		CreditRecoveryCases: []models.CreditRecoveryCase{
			{ID: uuid.New(), FranchiseID: f.ID, ClientID: uuid.New(), DebtAmount: 1000},
			{ID: uuid.New(), FranchiseID: f.ID, ClientID: uuid.New(), DebtAmount: 2000},
			{ID: uuid.New(), FranchiseID: other.ID, ClientID: uuid.New(), DebtAmount: 3000},
		},
	}

	fs := For(f, snap)
	if fs.CreditRecoveryCases != 2 {
		t.Errorf("CreditRecoveryCases = %d, want 2", fs.CreditRecoveryCases)
	}
}

func TestForAllPreservesSnapshotOrder(t *testing.T) {
	a := newFranchise("First")
	b := newFranchise("Second")
	c := newFranchise("Third")
	snap := models.Snapshot{Franchises: []models.Franchise{a, b, c}}

	all := ForAll(snap)
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[0].Franchise.ID != a.ID || all[1].Franchise.ID != b.ID || all[2].Franchise.ID != c.ID {
		t.Error("ForAll did not preserve snapshot order")
	}
}

func TestNetworkRollup(t *testing.T) {
	a := newFranchise("Unit A")
	b := newFranchise("Unit B")
	snap := models.Snapshot{
		Franchises: []models.Franchise{a, b},
		Transactions: []models.Transaction{
			incomeTx(a.ID, 100000),
			incomeTx(b.ID, 25000),
		},
		Consortiums: []models.Consortium{
			consortium(a.ID, 100000),
			consortium(b.ID, 50000),
		},
	}

	all := ForAll(snap)
	ns := Network(all)

	if !approxEqual(ns.TotalRevenue, 150000) {
		t.Errorf("TotalRevenue = %v, want 150000", ns.TotalRevenue)
	}
	if !approxEqual(ns.TotalProfit, 125000) {
		t.Errorf("TotalProfit = %v, want 125000", ns.TotalProfit)
	}

	wantAvg := (all[0].HealthScore + all[1].HealthScore) / 2
	if !approxEqual(ns.AverageHealthScore, wantAvg) {
		t.Errorf("AverageHealthScore = %v, want %v", ns.AverageHealthScore, wantAvg)
	}
}

func TestNetworkEmpty(t *testing.T) {
	ns := Network(nil)
	if ns.TotalRevenue != 0 || ns.TotalProfit != 0 || ns.AverageHealthScore != 0 {
		t.Errorf("Network(nil) = %+v, want all zeros", ns)
	}
}

func TestNetworkSingleFranchise(t *testing.T) {
	f := newFranchise("Solo")
	snap := models.Snapshot{
		Franchises:   []models.Franchise{f},
		Transactions: []models.Transaction{incomeTx(f.ID, 25000)},
	}

	all := ForAll(snap)
	ns := Network(all)
	if !approxEqual(ns.AverageHealthScore, all[0].HealthScore) {
		t.Errorf("AverageHealthScore = %v, want %v", ns.AverageHealthScore, all[0].HealthScore)
	}
}

func TestForOrphanRowsContributeNothing(t *testing.T) {
	f := newFranchise("Unit A")
	ghost := uuid.New()
	snap := models.Snapshot{
		Franchises:   []models.Franchise{f},
		Transactions: []models.Transaction{incomeTx(ghost, 123456)},
		Consortiums:  []models.Consortium{consortium(ghost, 654321)},
		Leads:        []models.Lead{lead(ghost, models.LeadStatusWon)},
	}

	fs := For(f, snap)
	if fs.Profit != 0 || fs.ConsortiumSales != 0 || fs.ConversionRate != 0 {
		t.Errorf("orphan rows leaked into stats: %+v", fs)
	}
}
