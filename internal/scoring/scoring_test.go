package scoring

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return e.WithClock(func() time.Time { return fixedNow })
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func daysFromNow(d int) *time.Time {
	return timePtr(fixedNow.AddDate(0, 0, d))
}

// exampleProperty is the reference office asset used across tests.
func exampleProperty(id string) Property {
	return Property{
		ID:               id,
		Type:             TypeOffice,
		Location:         "Reading",
		PurchasePrice:    5_000_000,
		CurrentValue:     6_000_000,
		NOI:              480_000,
		OccupancyRate:    0.95,
		PurchaseDate:     timePtr(fixedNow.AddDate(-3, 0, 0)),
		LeaseExpiryDate:  daysFromNow(400),
		EPCRating:        strPtr("A"),
		MaintenanceScore: floatPtr(10),
	}
}

func TestScoreProperty_WorkedExample(t *testing.T) {
	e := testEngine(t)
	ps, err := e.ScoreProperty(exampleProperty("p1"), AnalysisOptions{Strategy: StrategyHold})
	require.NoError(t, err)

	assert.Equal(t, 100.0, ps.SubScores.Occupancy)
	assert.Equal(t, 100.0, ps.SubScores.Energy)
	assert.Equal(t, 100.0, ps.SubScores.Capex)
	assert.Equal(t, 100.0, ps.SubScores.NOI)
	assert.InDelta(t, 99.0, ps.SubScores.Lease, 1e-9)
	assert.InDelta(t, 99.75, ps.Score, 1e-9)
	assert.Equal(t, RiskLow, ps.RiskLevel)
	assert.Equal(t, "A+", ps.Grade)
	assert.False(t, ps.HighRisk)
	assert.Empty(t, ps.DefaultsApplied)
}

func TestOccupancyScore_MonotoneAndBounded(t *testing.T) {
	e := testEngine(t)
	for _, typ := range []PropertyType{TypeOffice, TypeRetail, TypeIndustrial, TypeResidential} {
		prev := -1.0
		for i := 0; i <= 100; i++ {
			p := Property{Type: typ, OccupancyRate: float64(i) / 100}
			s := e.OccupancyScore(p)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
			assert.GreaterOrEqual(t, s, prev, "type %s occupancy %d", typ, i)
			prev = s
		}
	}
}

func TestOccupancyScore_TypeOffsets(t *testing.T) {
	e := testEngine(t)
	assert.Equal(t, 95.0, e.OccupancyScore(Property{Type: TypeRetail, OccupancyRate: 0.97}))
	assert.Equal(t, 100.0, e.OccupancyScore(Property{Type: TypeResidential, OccupancyRate: 0.97}))
	assert.Equal(t, 35.0, e.OccupancyScore(Property{Type: TypeResidential, OccupancyRate: 0.2}))
	assert.Equal(t, 70.0, e.OccupancyScore(Property{Type: TypeIndustrial, OccupancyRate: 0.82}))
}

func TestLeaseScore_MissingExpiryIsNeutral(t *testing.T) {
	e := testEngine(t)
	p := exampleProperty("p1")
	p.LeaseExpiryDate = nil
	assert.Equal(t, 50.0, e.LeaseScore(p))

	ps, err := e.ScoreProperty(p, AnalysisOptions{})
	require.NoError(t, err)
	assert.Contains(t, ps.DefaultsApplied, DefaultedLeaseExpiryDate)
}

func TestLeaseScore_Bands(t *testing.T) {
	e := testEngine(t)
	// occupancy 0.5 adds a nudge of 10
	cases := []struct {
		days int
		want float64
	}{
		{30, 30},
		{120, 50},
		{200, 70},
		{500, 90},
		{900, 100},
		{-10, 30},
	}
	for _, tc := range cases {
		p := Property{OccupancyRate: 0.5, LeaseExpiryDate: daysFromNow(tc.days)}
		assert.InDelta(t, tc.want, e.LeaseScore(p), 1e-9, "days %d", tc.days)
	}
}

func TestNOIScore(t *testing.T) {
	e := testEngine(t)
	assert.Equal(t, 0.0, e.NOIScore(Property{CurrentValue: 0, NOI: 50_000}))
	assert.Equal(t, 0.0, e.NOIScore(Property{CurrentValue: -1, NOI: 50_000}))
	assert.Equal(t, 30.0, e.NOIScore(Property{CurrentValue: 1_000_000, NOI: 10_000}))
	assert.Equal(t, 70.0, e.NOIScore(Property{CurrentValue: 1_000_000, NOI: 55_000}))
	// value growth lifts the score: 70 × 1.2
	assert.InDelta(t, 84.0, e.NOIScore(Property{CurrentValue: 1_200_000, PurchasePrice: 1_000_000, NOI: 66_000}), 1e-9)
}

func TestEnergyScore(t *testing.T) {
	e := testEngine(t)
	young := Property{EPCRating: strPtr("A"), PurchaseDate: timePtr(fixedNow.AddDate(-2, 0, 0))}
	assert.Equal(t, 100.0, e.EnergyScore(young))

	c := func(years int) Property {
		return Property{EPCRating: strPtr("c"), PurchaseDate: timePtr(fixedNow.AddDate(-years, 0, 0))}
	}
	assert.Equal(t, 80.0, e.EnergyScore(c(3)))
	assert.Equal(t, 75.0, e.EnergyScore(c(7)))
	assert.Equal(t, 70.0, e.EnergyScore(c(12)))
	assert.Equal(t, 70.0, e.EnergyScore(Property{EPCRating: strPtr("C")}))
}

func TestEnergyScore_DefaultsUnknownRatingToD(t *testing.T) {
	e := testEngine(t)
	assert.Equal(t, 55.0, e.EnergyScore(Property{}))
	assert.Equal(t, 55.0, e.EnergyScore(Property{EPCRating: strPtr("Z")}))
}

func TestCapexScore(t *testing.T) {
	e := testEngine(t)
	assert.Equal(t, 50.0, e.CapexScore(Property{}))
	assert.Equal(t, 75.0, e.CapexScore(Property{MaintenanceScore: floatPtr(7), CurrentValue: 6_000_000}))
	assert.Equal(t, 80.0, e.CapexScore(Property{MaintenanceScore: floatPtr(7), CurrentValue: 12_000_000}))
	assert.Equal(t, 70.0, e.CapexScore(Property{MaintenanceScore: floatPtr(7), CurrentValue: 5_000_000}))
	assert.Equal(t, 100.0, e.CapexScore(Property{MaintenanceScore: floatPtr(10), CurrentValue: 20_000_000}))
}

func TestSustainabilityAndMarketScores(t *testing.T) {
	e := testEngine(t)
	// 0.7×70 + 0.3×60
	assert.Equal(t, 67.0, e.SustainabilityScore(Property{EPCRating: strPtr("C"), MaintenanceScore: floatPtr(6)}))
	assert.InDelta(t, 80.0, e.MarketScore(Property{Location: "London", Type: TypeOffice}), 1e-9)
	assert.Equal(t, 50.0, e.MarketScore(Property{Location: "Nowhere", Type: TypeOffice}))
}

func TestAnalyzePortfolio_HealthIsMean(t *testing.T) {
	e := testEngine(t)
	weak := exampleProperty("p2")
	weak.OccupancyRate = 0.6
	weak.EPCRating = strPtr("F")
	props := []Property{exampleProperty("p1"), weak}

	a, err := e.AnalyzePortfolio(props, AnalysisOptions{Strategy: StrategyHold})
	require.NoError(t, err)
	require.Len(t, a.Properties, 2)

	want := (a.Properties[0].Score + a.Properties[1].Score) / 2
	assert.InDelta(t, want, a.HealthScore, 0.01)
	assert.Equal(t, 2, a.PropertyCount)
	assert.Equal(t, StrategyHold, a.Strategy)
	assert.Equal(t, fixedNow, a.AnalyzedAt)
}

func TestAnalyzePortfolio_Empty(t *testing.T) {
	e := testEngine(t)
	a, err := e.AnalyzePortfolio(nil, AnalysisOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.HealthScore)
	assert.Equal(t, RiskHigh, a.RiskLevel)
	assert.Equal(t, "C", a.Grade)
	assert.False(t, a.ConcentrationRisk)
	assert.NotEmpty(t, a.Recommendations)
}

func TestAnalyzePortfolio_StrategyChangesWeightsNotSubScores(t *testing.T) {
	e := testEngine(t)
	p := exampleProperty("p1")
	p.OccupancyRate = 0.72
	p.EPCRating = strPtr("E")

	var first SubScores
	aggregates := map[Strategy]float64{}
	for i, s := range Strategies {
		a, err := e.AnalyzePortfolio([]Property{p}, AnalysisOptions{Strategy: s})
		require.NoError(t, err)
		if i == 0 {
			first = a.Properties[0].SubScores
		}
		assert.Equal(t, first, a.Properties[0].SubScores)
		aggregates[s] = a.HealthScore
	}
	assert.NotEqual(t, aggregates[StrategyGrowth], aggregates[StrategyDivest])
}

func TestAnalyzePortfolio_EscalatesOnlyAboveThirtyPercent(t *testing.T) {
	e := testEngine(t)
	build := func(weakCount int) []Property {
		props := make([]Property, 0, 10)
		for i := 0; i < 10; i++ {
			p := exampleProperty(fmt.Sprintf("p%d", i))
			if i < weakCount {
				p.LeaseExpiryDate = daysFromNow(30)
			}
			props = append(props, p)
		}
		return props
	}

	exact, err := e.AnalyzePortfolio(build(3), AnalysisOptions{Strategy: StrategyHold})
	require.NoError(t, err)
	assert.Equal(t, RiskLow, exact.RiskLevel)
	assert.False(t, exact.ConcentrationRisk)

	over, err := e.AnalyzePortfolio(build(4), AnalysisOptions{Strategy: StrategyHold})
	require.NoError(t, err)
	assert.Equal(t, RiskMedium, over.RiskLevel)
	assert.True(t, over.ConcentrationRisk)
	assert.Len(t, over.Recommendations, 3)
}

func TestAnalyzePortfolio_Enhanced(t *testing.T) {
	e := testEngine(t)
	a, err := e.AnalyzePortfolio([]Property{exampleProperty("p1")}, AnalysisOptions{Strategy: StrategyGrowth, Enhanced: true})
	require.NoError(t, err)
	assert.True(t, a.Enhanced)
	assert.Len(t, a.Weights, 7)
	// market falls back to neutral demand for an unindexed location
	assert.Equal(t, 50.0, a.Properties[0].SubScores.Market)
	assert.Less(t, a.HealthScore, 99.75)
}

func TestAnalyzePortfolio_CustomWeights(t *testing.T) {
	e := testEngine(t)
	p := exampleProperty("p1")
	p.NOI = 250_000

	a, err := e.AnalyzePortfolio([]Property{p}, AnalysisOptions{CustomWeights: Weights{FactorNOI: 1}})
	require.NoError(t, err)
	assert.InDelta(t, e.NOIScore(p), a.HealthScore, 1e-9)

	_, err = e.AnalyzePortfolio([]Property{p}, AnalysisOptions{CustomWeights: Weights{FactorNOI: 0.5}})
	assert.True(t, errors.Is(err, ErrInvalidWeights))

	_, err = e.AnalyzePortfolio([]Property{p}, AnalysisOptions{CustomWeights: Weights{FactorMarket: 1}})
	assert.True(t, errors.Is(err, ErrInvalidWeights))
}

func TestAnalyzePortfolio_UnknownStrategy(t *testing.T) {
	e := testEngine(t)
	_, err := e.AnalyzePortfolio(nil, AnalysisOptions{Strategy: "speculate"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestGradeLadder(t *testing.T) {
	e := testEngine(t)
	cases := map[float64]string{95: "A+", 90: "A+", 87: "A", 82: "B+", 75: "B", 71: "C+", 69.99: "C", 0: "C"}
	for score, want := range cases {
		assert.Equal(t, want, e.Grade(score), "score %v", score)
	}
}

func TestReconcileTransaction_ToleranceIsInclusive(t *testing.T) {
	e := testEngine(t)
	leases := []Lease{{ID: "l1", PropertyID: "p1", TenantName: "Acme Ltd", MonthlyRent: 1000}}

	atLimit := e.ReconcileTransaction(Transaction{ID: "t1", PropertyID: "p1", TenantName: " acme ltd ", Amount: 1050}, leases)
	assert.True(t, atLimit.Reconciled)
	assert.Equal(t, "l1", atLimit.LeaseID)

	over := e.ReconcileTransaction(Transaction{ID: "t2", PropertyID: "p1", TenantName: "Acme Ltd", Amount: 1050.1}, leases)
	assert.False(t, over.Reconciled)
	assert.Equal(t, IssueAmountMismatch, over.Issue)
	require.NotNil(t, over.Expected)
	require.NotNil(t, over.VariancePct)
	assert.Equal(t, 1000.0, *over.Expected)
	assert.InDelta(t, 5.01, *over.VariancePct, 1e-9)

	missing := e.ReconcileTransaction(Transaction{ID: "t3", PropertyID: "p2", TenantName: "Acme Ltd", Amount: 1000}, leases)
	assert.False(t, missing.Reconciled)
	assert.Equal(t, IssueNoMatchingLease, missing.Issue)
}

func TestReconcileTransaction_FirstMatchingLeaseWins(t *testing.T) {
	e := testEngine(t)
	leases := []Lease{
		{ID: "old", PropertyID: "p1", TenantName: "Acme", MonthlyRent: 800},
		{ID: "new", PropertyID: "p1", TenantName: "Acme", MonthlyRent: 1000},
	}
	res := e.ReconcileTransaction(Transaction{PropertyID: "p1", TenantName: "Acme", Amount: 1000}, leases)
	assert.Equal(t, "old", res.LeaseID)
	assert.False(t, res.Reconciled)
}

func TestTransactionRisk(t *testing.T) {
	e := testEngine(t)
	due := fixedNow
	medium := e.TransactionRisk(Transaction{
		ID: "t1", Type: "service", Amount: 1100, ExpectedAmount: floatPtr(1000),
		DueDate: &due, OccurredAt: due.AddDate(0, 0, 10),
	})
	assert.Equal(t, 10, medium.DaysLate)
	assert.Equal(t, 20.0, medium.LatePenalty)
	assert.Equal(t, 30.0, medium.VariancePenalty)
	assert.Equal(t, 10.0, medium.TypePenalty)
	assert.Equal(t, 60.0, medium.Score)
	assert.Equal(t, RiskMedium, medium.Level)

	high := e.TransactionRisk(Transaction{
		Type: "service", Amount: 1100, ExpectedAmount: floatPtr(1000),
		DueDate: &due, OccurredAt: due.AddDate(0, 0, 40),
	})
	assert.Equal(t, 50.0, high.LatePenalty)
	assert.Equal(t, 90.0, high.Score)
	assert.Equal(t, RiskHigh, high.Level)

	onTime := e.TransactionRisk(Transaction{Type: "rent", Amount: 1000, DueDate: &due, OccurredAt: due.Add(-time.Hour)})
	assert.Equal(t, 0.0, onTime.Score)
	assert.Equal(t, RiskLow, onTime.Level)
}

func TestReconcile_Report(t *testing.T) {
	e := testEngine(t)
	due := fixedNow
	leases := []Lease{{ID: "l1", PropertyID: "p1", TenantName: "Acme", MonthlyRent: 1000}}
	txs := []Transaction{
		{ID: "t1", PropertyID: "p1", TenantName: "Acme", Type: "rent", Amount: 1000, DueDate: &due, OccurredAt: due},
		{ID: "t2", PropertyID: "p1", TenantName: "Acme", Type: "service", Amount: 1500, DueDate: &due, OccurredAt: due.AddDate(0, 0, 31)},
		{ID: "t3", PropertyID: "p9", TenantName: "Ghost", Type: "rent", Amount: 10, OccurredAt: due},
	}
	rep := e.Reconcile(txs, leases)
	assert.Equal(t, 3, rep.TotalTransactions)
	assert.Equal(t, 1, rep.Reconciled)
	assert.Equal(t, 2, rep.Flagged)
	assert.InDelta(t, 33.33, rep.ReconciliationRate, 1e-9)
	assert.Equal(t, 1, rep.HighRiskCount)
	assert.Len(t, rep.Recommendations, 3)

	empty := e.Reconcile(nil, leases)
	assert.Equal(t, 0.0, empty.ReconciliationRate)
}

func TestForecastProperty(t *testing.T) {
	e := testEngine(t)
	p := Property{ID: "p1", Type: TypeOffice, Location: "London", CurrentValue: 1_000_000, OccupancyRate: 0.9, MaintenanceScore: floatPtr(2), EPCRating: strPtr("G")}
	f := e.ForecastProperty(p)
	assert.InDelta(t, 0.8, f.MarketDemand, 1e-9)
	assert.InDelta(t, 0.954, f.ForecastOccupancy, 1e-9)
	assert.InDelta(t, 0.036, f.GrowthRate, 1e-9)
	assert.InDelta(t, 1_036_000, f.ForecastValue, 0.01)
	assert.InDelta(t, 0.79, f.Confidence, 1e-9)
	assert.Equal(t, []string{RiskFactorPoorCondition, RiskFactorPoorEfficiency}, f.RiskFactors)
}

func TestForecastPortfolio(t *testing.T) {
	e := testEngine(t)
	props := []Property{
		{ID: "a", Location: "Nowhere", Type: TypeOffice, CurrentValue: 1_000_000, OccupancyRate: 0.7},
		{ID: "b", Location: "Nowhere", Type: TypeRetail, CurrentValue: 3_000_000, OccupancyRate: 0.9},
	}
	pf := e.ForecastPortfolio(props)
	assert.Equal(t, 4_000_000.0, pf.CurrentValue)
	assert.InDelta(t, 4_120_000, pf.ForecastValue, 0.01)
	assert.InDelta(t, 3.0, pf.ValueChangePct, 1e-9)
	assert.InDelta(t, 0.7, pf.AverageConfidence, 1e-9)
	assert.Equal(t, 1, pf.RiskFactorCount)
}

func TestUtilization(t *testing.T) {
	e := testEngine(t)
	eff := e.Utilization(OccupancyReading{PropertyID: "p1", TotalArea: 1000, OccupiedArea: 800, CommonArea: 100, TotalParking: 50, OccupiedParking: 20})
	assert.InDelta(t, 0.8, eff.UtilizationRate, 1e-9)
	assert.InDelta(t, 72.0, eff.EfficiencyScore, 1e-9)
	assert.Equal(t, ClassEfficient, eff.Classification)
	assert.InDelta(t, 0.4, eff.ParkingUtilization, 1e-9)

	assert.Equal(t, ClassUnderutilized, e.Utilization(OccupancyReading{TotalArea: 1000, OccupiedArea: 300}).Classification)
	assert.Equal(t, ClassOvercrowded, e.Utilization(OccupancyReading{TotalArea: 1000, OccupiedArea: 1300}).Classification)

	zero := e.Utilization(OccupancyReading{TotalArea: 0, OccupiedArea: 50})
	assert.Equal(t, 0.0, zero.UtilizationRate)
	assert.Equal(t, 0.0, zero.EfficiencyScore)
}

func TestOccupancySummary(t *testing.T) {
	e := testEngine(t)
	s := e.OccupancySummary([]OccupancyReading{
		{TotalArea: 1000, OccupiedArea: 800},
		{TotalArea: 1000, OccupiedArea: 400},
	})
	assert.InDelta(t, 0.6, s.AverageUtilization, 1e-9)
	assert.Equal(t, 1, s.Classes[ClassEfficient])
	assert.Equal(t, 1, s.Classes[ClassUnderutilized])
	assert.Equal(t, 0, s.Classes[ClassOvercrowded])
}

func TestLeaseRisk(t *testing.T) {
	e := testEngine(t)
	high := e.LeaseRisk(Property{ID: "p1", Type: TypeRetail, Location: "Birmingham", OccupancyRate: 0.5, EPCRating: strPtr("G"), LeaseExpiryDate: daysFromNow(60)})
	assert.Equal(t, 30.0, high.EPCPenalty)
	assert.Equal(t, 30.0, high.OccupancyPenalty)
	assert.InDelta(t, 4.0, high.MarketPenalty, 1e-9)
	assert.Equal(t, 30.0, high.ExpiryPenalty)
	assert.InDelta(t, 94.0, high.Score, 1e-9)
	assert.Equal(t, RiskHigh, high.Level)
	assert.NotEmpty(t, high.Action)

	low := e.LeaseRisk(Property{ID: "p2", Type: TypeOffice, Location: "London", OccupancyRate: 0.95, EPCRating: strPtr("A")})
	assert.Equal(t, 0.0, low.Score)
	assert.Equal(t, RiskLow, low.Level)
	assert.Nil(t, low.DaysToExpiry)

	// default D rating with a lease due in 200 days: 15 + 10
	defaulted := e.LeaseRisk(Property{ID: "p3", OccupancyRate: 0.92, Location: "Nowhere", LeaseExpiryDate: daysFromNow(200)})
	assert.Equal(t, 25.0, defaulted.Score)
	assert.Equal(t, RiskLow, defaulted.Level)
	require.NotNil(t, defaulted.DaysToExpiry)
	assert.Equal(t, 200, *defaulted.DaysToExpiry)
}

func TestLeaseRiskReport_PrioritiesAreStableTopFive(t *testing.T) {
	e := testEngine(t)
	props := []Property{
		{ID: "a", EPCRating: strPtr("B"), OccupancyRate: 1, Location: "Nowhere"},
		{ID: "b", EPCRating: strPtr("G"), OccupancyRate: 1, Location: "Nowhere"},
		{ID: "c", EPCRating: strPtr("G"), OccupancyRate: 1, Location: "Nowhere"},
		{ID: "d", EPCRating: strPtr("E"), OccupancyRate: 1, Location: "Nowhere"},
		{ID: "e", EPCRating: strPtr("A"), OccupancyRate: 1, Location: "Nowhere"},
		{ID: "f", EPCRating: strPtr("F"), OccupancyRate: 0.5, Location: "Nowhere", LeaseExpiryDate: daysFromNow(10)},
		{ID: "g", EPCRating: strPtr("C"), OccupancyRate: 1, Location: "Nowhere"},
	}
	rep := e.LeaseRiskReport(props)
	require.Len(t, rep.Priorities, 5)
	ids := make([]string, 0, 5)
	for _, p := range rep.Priorities {
		ids = append(ids, p.PropertyID)
	}
	assert.Equal(t, []string{"f", "b", "c", "d", "g"}, ids)
	assert.Equal(t, 1, rep.HighCount)
	assert.Equal(t, 2, rep.MediumCount)
	assert.Equal(t, 4, rep.LowCount)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Weights[StrategyHold] = Weights{FactorLease: 0.5, FactorNOI: 0.4}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWeights))

	cfg = DefaultConfig()
	cfg.Weights[StrategyGrowth][FactorMarket] = 0
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidWeights))

	cfg = DefaultConfig()
	delete(cfg.EnhancedWeights, StrategyDivest)
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidWeights))
}

func TestNewEngine_NormalizesLowerCaseKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Property.EPCScores = map[string]float64{"a": 100, "b": 85, "c": 70, "d": 55, "e": 40, "f": 25, "g": 10}
	cfg.Property.DefaultEPC = "d"
	cfg.Property.OccupancyBands = []Band{{Min: 0.7, Score: 50}, {Min: 0.95, Score: 100}}

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 100.0, e.EnergyScore(Property{EPCRating: strPtr("A")}))
	assert.Equal(t, 100.0, e.OccupancyScore(Property{Type: TypeOffice, OccupancyRate: 0.96}))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Growth ")
	require.NoError(t, err)
	assert.Equal(t, StrategyGrowth, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyHold, s)

	_, err = ParseStrategy("flip")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}
