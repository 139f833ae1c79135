package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Strategy selects which weight preset scores a portfolio.
type Strategy string

const (
	StrategyGrowth Strategy = "growth"
	StrategyHold   Strategy = "hold"
	StrategyDivest Strategy = "divest"
)

// Strategies lists the supported presets in display order.
var Strategies = []Strategy{StrategyGrowth, StrategyHold, StrategyDivest}

// ParseStrategy accepts any casing; empty input resolves to hold.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return StrategyHold, nil
	case StrategyGrowth:
		return StrategyGrowth, nil
	case StrategyHold:
		return StrategyHold, nil
	case StrategyDivest:
		return StrategyDivest, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Factor names one sub-score that can carry weight.
type Factor string

const (
	FactorLease          Factor = "lease"
	FactorOccupancy      Factor = "occupancy"
	FactorNOI            Factor = "noi"
	FactorEnergy         Factor = "energy"
	FactorCapex          Factor = "capex"
	FactorSustainability Factor = "sustainability"
	FactorMarket         Factor = "market"
)

var (
	basicFactors    = []Factor{FactorLease, FactorOccupancy, FactorNOI, FactorEnergy, FactorCapex}
	enhancedFactors = []Factor{FactorLease, FactorOccupancy, FactorNOI, FactorEnergy, FactorCapex, FactorSustainability, FactorMarket}
)

// ActiveFactors returns the factor set used by the basic or enhanced path.
func ActiveFactors(enhanced bool) []Factor {
	if enhanced {
		return append([]Factor(nil), enhancedFactors...)
	}
	return append([]Factor(nil), basicFactors...)
}

// Weights maps factors to their share of the aggregate score.
type Weights map[Factor]float64

// Sum adds every weight in the map.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// Band maps values at or above Min to Score.
type Band struct {
	Min   float64 `mapstructure:"min" json:"min"`
	Score float64 `mapstructure:"score" json:"score"`
}

// DayBand maps day counts strictly below Below to Score.
type DayBand struct {
	Below int     `mapstructure:"below" json:"below"`
	Score float64 `mapstructure:"score" json:"score"`
}

// AgeBonus adds Bonus to the energy score for assets younger than BelowYears.
type AgeBonus struct {
	BelowYears float64 `mapstructure:"below_years" json:"below_years"`
	Bonus      float64 `mapstructure:"bonus" json:"bonus"`
}

// GradeBand assigns Grade to aggregate scores at or above Min.
type GradeBand struct {
	Min   float64 `mapstructure:"min" json:"min"`
	Grade string  `mapstructure:"grade" json:"grade"`
}

type PropertyConfig struct {
	LeaseExpiryBands    []DayBand          `mapstructure:"lease_expiry_bands" json:"lease_expiry_bands"`
	LeaseExpiryCeiling  float64            `mapstructure:"lease_expiry_ceiling" json:"lease_expiry_ceiling"`
	LeaseOccupancyNudge float64            `mapstructure:"lease_occupancy_nudge" json:"lease_occupancy_nudge"`
	LeaseMissingScore   float64            `mapstructure:"lease_missing_score" json:"lease_missing_score"`
	OccupancyBands      []Band             `mapstructure:"occupancy_bands" json:"occupancy_bands"`
	OccupancyFloor      float64            `mapstructure:"occupancy_floor" json:"occupancy_floor"`
	TypeOffsets         map[string]float64 `mapstructure:"type_offsets" json:"type_offsets"`
	YieldBands          []Band             `mapstructure:"yield_bands" json:"yield_bands"`
	YieldFloor          float64            `mapstructure:"yield_floor" json:"yield_floor"`
	EPCScores           map[string]float64 `mapstructure:"epc_scores" json:"epc_scores"`
	DefaultEPC          string             `mapstructure:"default_epc" json:"default_epc"`
	EnergyAgeBonuses    []AgeBonus         `mapstructure:"energy_age_bonuses" json:"energy_age_bonuses"`
	DefaultMaintenance  float64            `mapstructure:"default_maintenance" json:"default_maintenance"`
	// CapexValueTiers apply when current value is strictly above Min; first match wins.
	CapexValueTiers []Band `mapstructure:"capex_value_tiers" json:"capex_value_tiers"`
	// SustainabilityEnergyShare is the EPC share of the sustainability score; maintenance takes the rest.
	SustainabilityEnergyShare float64 `mapstructure:"sustainability_energy_share" json:"sustainability_energy_share"`
}

type PortfolioConfig struct {
	LowRiskMin    float64 `mapstructure:"low_risk_min" json:"low_risk_min"`
	MediumRiskMin float64 `mapstructure:"medium_risk_min" json:"medium_risk_min"`
	// ConcentrationRatio is exclusive: escalation needs strictly more than this share of weak properties.
	ConcentrationRatio    float64     `mapstructure:"concentration_ratio" json:"concentration_ratio"`
	WeakSubScoreBelow     float64     `mapstructure:"weak_sub_score_below" json:"weak_sub_score_below"`
	HighRiskPropertyBelow float64     `mapstructure:"high_risk_property_below" json:"high_risk_property_below"`
	Grades                []GradeBand `mapstructure:"grades" json:"grades"`
	GradeFloor            string      `mapstructure:"grade_floor" json:"grade_floor"`
}

type TransactionConfig struct {
	ReconciliationTolerance float64            `mapstructure:"reconciliation_tolerance" json:"reconciliation_tolerance"`
	LatePenaltyPerDay       float64            `mapstructure:"late_penalty_per_day" json:"late_penalty_per_day"`
	LatePenaltyCap          float64            `mapstructure:"late_penalty_cap" json:"late_penalty_cap"`
	VariancePenaltyPerPct   float64            `mapstructure:"variance_penalty_per_pct" json:"variance_penalty_per_pct"`
	VariancePenaltyCap      float64            `mapstructure:"variance_penalty_cap" json:"variance_penalty_cap"`
	TypePenalties           map[string]float64 `mapstructure:"type_penalties" json:"type_penalties"`
	HighRiskAbove           float64            `mapstructure:"high_risk_above" json:"high_risk_above"`
	MediumRiskAbove         float64            `mapstructure:"medium_risk_above" json:"medium_risk_above"`
}

type ForecastConfig struct {
	DefaultDemand          float64 `mapstructure:"default_demand" json:"default_demand"`
	OccupancyDemandFactor  float64 `mapstructure:"occupancy_demand_factor" json:"occupancy_demand_factor"`
	BaseGrowth             float64 `mapstructure:"base_growth" json:"base_growth"`
	GrowthDemandFactor     float64 `mapstructure:"growth_demand_factor" json:"growth_demand_factor"`
	BaseConfidence         float64 `mapstructure:"base_confidence" json:"base_confidence"`
	ConfidenceDemandFactor float64 `mapstructure:"confidence_demand_factor" json:"confidence_demand_factor"`
	HorizonMonths          int     `mapstructure:"horizon_months" json:"horizon_months"`
	RiskOccupancyBelow     float64 `mapstructure:"risk_occupancy_below" json:"risk_occupancy_below"`
	RiskMaintenanceBelow   float64 `mapstructure:"risk_maintenance_below" json:"risk_maintenance_below"`
	RiskEPCRatings         []string `mapstructure:"risk_epc_ratings" json:"risk_epc_ratings"`
	// DemandIndex is keyed by "location|type", lower case.
	DemandIndex map[string]float64 `mapstructure:"demand_index" json:"demand_index"`
}

type OccupancyConfig struct {
	OvercrowdedAbove   float64 `mapstructure:"overcrowded_above" json:"overcrowded_above"`
	UnderutilizedBelow float64 `mapstructure:"underutilized_below" json:"underutilized_below"`
}

type LeaseRiskConfig struct {
	EPCRiskWeights      map[string]float64 `mapstructure:"epc_risk_weights" json:"epc_risk_weights"`
	OccupancyTarget     float64            `mapstructure:"occupancy_target" json:"occupancy_target"`
	ShortfallCap        float64            `mapstructure:"shortfall_cap" json:"shortfall_cap"`
	MarketNeutralDemand float64            `mapstructure:"market_neutral_demand" json:"market_neutral_demand"`
	MarketPenaltyFactor float64            `mapstructure:"market_penalty_factor" json:"market_penalty_factor"`
	ExpiryPenalties     []DayBand          `mapstructure:"expiry_penalties" json:"expiry_penalties"`
	HighMin             float64            `mapstructure:"high_min" json:"high_min"`
	MediumMin           float64            `mapstructure:"medium_min" json:"medium_min"`
	PriorityLimit       int                `mapstructure:"priority_limit" json:"priority_limit"`
}

// Config carries every table and threshold the engine uses.
type Config struct {
	Weights         map[Strategy]Weights `mapstructure:"weights" json:"weights"`
	EnhancedWeights map[Strategy]Weights `mapstructure:"enhanced_weights" json:"enhanced_weights"`
	Property        PropertyConfig       `mapstructure:"property" json:"property"`
	Portfolio       PortfolioConfig      `mapstructure:"portfolio" json:"portfolio"`
	Transactions    TransactionConfig    `mapstructure:"transactions" json:"transactions"`
	Forecast        ForecastConfig       `mapstructure:"forecast" json:"forecast"`
	Occupancy       OccupancyConfig      `mapstructure:"occupancy" json:"occupancy"`
	LeaseRisk       LeaseRiskConfig      `mapstructure:"lease_risk" json:"lease_risk"`
}

// DefaultConfig returns the stock business rules.
func DefaultConfig() Config {
	return Config{
		Weights: map[Strategy]Weights{
			StrategyGrowth: {FactorLease: 0.15, FactorOccupancy: 0.20, FactorNOI: 0.30, FactorEnergy: 0.15, FactorCapex: 0.20},
			StrategyHold:   {FactorLease: 0.25, FactorOccupancy: 0.25, FactorNOI: 0.20, FactorEnergy: 0.15, FactorCapex: 0.15},
			StrategyDivest: {FactorLease: 0.30, FactorOccupancy: 0.25, FactorNOI: 0.25, FactorEnergy: 0.10, FactorCapex: 0.10},
		},
		EnhancedWeights: map[Strategy]Weights{
			StrategyGrowth: {FactorLease: 0.10, FactorOccupancy: 0.15, FactorNOI: 0.25, FactorEnergy: 0.10, FactorCapex: 0.10, FactorSustainability: 0.10, FactorMarket: 0.20},
			StrategyHold:   {FactorLease: 0.20, FactorOccupancy: 0.20, FactorNOI: 0.15, FactorEnergy: 0.10, FactorCapex: 0.10, FactorSustainability: 0.10, FactorMarket: 0.15},
			StrategyDivest: {FactorLease: 0.25, FactorOccupancy: 0.20, FactorNOI: 0.20, FactorEnergy: 0.05, FactorCapex: 0.10, FactorSustainability: 0.05, FactorMarket: 0.15},
		},
		Property: PropertyConfig{
			LeaseExpiryBands:    []DayBand{{Below: 90, Score: 20}, {Below: 180, Score: 40}, {Below: 365, Score: 60}, {Below: 730, Score: 80}},
			LeaseExpiryCeiling:  100,
			LeaseOccupancyNudge: 20,
			LeaseMissingScore:   50,
			OccupancyBands:      []Band{{Min: 0.95, Score: 100}, {Min: 0.90, Score: 90}, {Min: 0.85, Score: 80}, {Min: 0.80, Score: 70}, {Min: 0.70, Score: 50}},
			OccupancyFloor:      30,
			TypeOffsets:         map[string]float64{"retail": -5, "residential": 5},
			YieldBands:          []Band{{Min: 0.08, Score: 100}, {Min: 0.07, Score: 90}, {Min: 0.06, Score: 80}, {Min: 0.05, Score: 70}, {Min: 0.04, Score: 60}, {Min: 0.03, Score: 50}},
			YieldFloor:          30,
			EPCScores:           map[string]float64{"A": 100, "B": 85, "C": 70, "D": 55, "E": 40, "F": 25, "G": 10},
			DefaultEPC:          "D",
			EnergyAgeBonuses:    []AgeBonus{{BelowYears: 5, Bonus: 10}, {BelowYears: 10, Bonus: 5}},
			DefaultMaintenance:  5,
			CapexValueTiers:     []Band{{Min: 10_000_000, Score: 10}, {Min: 5_000_000, Score: 5}},

			SustainabilityEnergyShare: 0.7,
		},
		Portfolio: PortfolioConfig{
			LowRiskMin:            80,
			MediumRiskMin:         60,
			ConcentrationRatio:    0.30,
			WeakSubScoreBelow:     50,
			HighRiskPropertyBelow: 60,
			Grades:                []GradeBand{{Min: 90, Grade: "A+"}, {Min: 85, Grade: "A"}, {Min: 80, Grade: "B+"}, {Min: 75, Grade: "B"}, {Min: 70, Grade: "C+"}},
			GradeFloor:            "C",
		},
		Transactions: TransactionConfig{
			ReconciliationTolerance: 0.05,
			LatePenaltyPerDay:       2,
			LatePenaltyCap:          50,
			VariancePenaltyPerPct:   5,
			VariancePenaltyCap:      30,
			TypePenalties:           map[string]float64{"service": 10, "deposit": 5, "rent": 0},
			HighRiskAbove:           70,
			MediumRiskAbove:         40,
		},
		Forecast: ForecastConfig{
			DefaultDemand:          0.5,
			OccupancyDemandFactor:  0.2,
			BaseGrowth:             0.03,
			GrowthDemandFactor:     0.02,
			BaseConfidence:         0.7,
			ConfidenceDemandFactor: 0.3,
			HorizonMonths:          12,
			RiskOccupancyBelow:     0.8,
			RiskMaintenanceBelow:   3,
			RiskEPCRatings:         []string{"F", "G"},
			DemandIndex: map[string]float64{
				"london|office":         0.8,
				"london|residential":    0.85,
				"london|retail":         0.55,
				"manchester|office":     0.65,
				"manchester|industrial": 0.75,
				"birmingham|industrial": 0.7,
				"birmingham|retail":     0.4,
				"leeds|residential":     0.6,
			},
		},
		Occupancy: OccupancyConfig{
			OvercrowdedAbove:   1.2,
			UnderutilizedBelow: 0.5,
		},
		LeaseRisk: LeaseRiskConfig{
			EPCRiskWeights:      map[string]float64{"A": 0, "B": 5, "C": 10, "D": 15, "E": 20, "F": 25, "G": 30},
			OccupancyTarget:     0.9,
			ShortfallCap:        30,
			MarketNeutralDemand: 0.5,
			MarketPenaltyFactor: 40,
			ExpiryPenalties:     []DayBand{{Below: 90, Score: 30}, {Below: 180, Score: 20}, {Below: 365, Score: 10}},
			HighMin:             60,
			MediumMin:           30,
			PriorityLimit:       5,
		},
	}
}

// WeightsFor returns a copy of the preset for strategy on the basic or enhanced path.
func (c Config) WeightsFor(strategy Strategy, enhanced bool) (Weights, error) {
	presets := c.Weights
	if enhanced {
		presets = c.EnhancedWeights
	}
	w, ok := presets[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out, nil
}

const weightTolerance = 1e-6

// ValidateWeights checks that w only names active factors, has no negative
// entries and sums to 1.
func ValidateWeights(w Weights, enhanced bool) error {
	if len(w) == 0 {
		return fmt.Errorf("%w: no weights given", ErrInvalidWeights)
	}
	allowed := map[Factor]bool{}
	for _, f := range ActiveFactors(enhanced) {
		allowed[f] = true
	}
	for f, v := range w {
		if !allowed[f] {
			return fmt.Errorf("%w: factor %q is not scored on this path", ErrInvalidWeights, f)
		}
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: factor %q has weight %v", ErrInvalidWeights, f, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Validate checks every preset.
func (c Config) Validate() error {
	for _, s := range Strategies {
		basic, ok := c.Weights[s]
		if !ok {
			return fmt.Errorf("%w: missing %s preset", ErrInvalidWeights, s)
		}
		if err := ValidateWeights(basic, false); err != nil {
			return fmt.Errorf("%s preset: %w", s, err)
		}
		enhanced, ok := c.EnhancedWeights[s]
		if !ok {
			return fmt.Errorf("%w: missing enhanced %s preset", ErrInvalidWeights, s)
		}
		if err := ValidateWeights(enhanced, true); err != nil {
			return fmt.Errorf("enhanced %s preset: %w", s, err)
		}
	}
	if _, ok := c.Property.EPCScores[c.Property.DefaultEPC]; !ok {
		return fmt.Errorf("default EPC rating %q has no score", c.Property.DefaultEPC)
	}
	if c.Transactions.ReconciliationTolerance < 0 {
		return fmt.Errorf("reconciliation tolerance must not be negative")
	}
	return nil
}

// Normalize puts key casing and band ordering into the shape lookups expect.
// Config files read through viper arrive with lower-cased map keys.
func (c *Config) Normalize() {
	c.Property.EPCScores = upperKeys(c.Property.EPCScores)
	c.Property.DefaultEPC = strings.ToUpper(strings.TrimSpace(c.Property.DefaultEPC))
	c.Property.TypeOffsets = lowerKeys(c.Property.TypeOffsets)
	c.LeaseRisk.EPCRiskWeights = upperKeys(c.LeaseRisk.EPCRiskWeights)
	c.Transactions.TypePenalties = lowerKeys(c.Transactions.TypePenalties)
	c.Forecast.DemandIndex = lowerKeys(c.Forecast.DemandIndex)
	for i, r := range c.Forecast.RiskEPCRatings {
		c.Forecast.RiskEPCRatings[i] = strings.ToUpper(strings.TrimSpace(r))
	}

	sortBandsDesc(c.Property.OccupancyBands)
	sortBandsDesc(c.Property.YieldBands)
	sortBandsDesc(c.Property.CapexValueTiers)
	sortDayBands(c.Property.LeaseExpiryBands)
	sortDayBands(c.LeaseRisk.ExpiryPenalties)
	sort.SliceStable(c.Property.EnergyAgeBonuses, func(i, j int) bool {
		return c.Property.EnergyAgeBonuses[i].BelowYears < c.Property.EnergyAgeBonuses[j].BelowYears
	})
	sort.SliceStable(c.Portfolio.Grades, func(i, j int) bool {
		return c.Portfolio.Grades[i].Min > c.Portfolio.Grades[j].Min
	})
}

func upperKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}

func lowerKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func sortBandsDesc(b []Band) {
	sort.SliceStable(b, func(i, j int) bool { return b[i].Min > b[j].Min })
}

func sortDayBands(b []DayBand) {
	sort.SliceStable(b, func(i, j int) bool { return b[i].Below < b[j].Below })
}

// DemandKey builds the DemandIndex key for a location and property type.
func DemandKey(location string, t PropertyType) string {
	return strings.ToLower(strings.TrimSpace(location)) + "|" + strings.ToLower(strings.TrimSpace(string(t)))
}
