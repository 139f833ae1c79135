package scoring

import (
	"math"
	"strings"
)

// SubScores holds the per-factor scores of one property, each in [0,100].
type SubScores struct {
	Lease          float64 `json:"lease"`
	Occupancy      float64 `json:"occupancy"`
	NOI            float64 `json:"noi"`
	Energy         float64 `json:"energy"`
	Capex          float64 `json:"capex"`
	Sustainability float64 `json:"sustainability"`
	Market         float64 `json:"market"`
}

func (s SubScores) value(f Factor) float64 {
	switch f {
	case FactorLease:
		return s.Lease
	case FactorOccupancy:
		return s.Occupancy
	case FactorNOI:
		return s.NOI
	case FactorEnergy:
		return s.Energy
	case FactorCapex:
		return s.Capex
	case FactorSustainability:
		return s.Sustainability
	case FactorMarket:
		return s.Market
	}
	return 0
}

// Weighted returns Σ weight×sub-score over the factors present in w.
func (s SubScores) Weighted(w Weights) float64 {
	var total float64
	for f, weight := range w {
		total += weight * s.value(f)
	}
	return total
}

type PropertyScore struct {
	PropertyID      string       `json:"property_id"`
	Name            string       `json:"name,omitempty"`
	Type            PropertyType `json:"type"`
	Location        string       `json:"location"`
	SubScores       SubScores    `json:"sub_scores"`
	Score           float64      `json:"score"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	Grade           string       `json:"grade"`
	HighRisk        bool         `json:"high_risk"`
	DefaultsApplied []string     `json:"defaults_applied,omitempty"`

	raw float64
}

// SubScores computes all seven factor scores for p.
func (e *Engine) SubScores(p Property) SubScores {
	return e.subScores(e.resolveProperty(p))
}

func (e *Engine) subScores(r resolvedProperty) SubScores {
	return SubScores{
		Lease:          e.leaseScore(r),
		Occupancy:      e.occupancyScore(r),
		NOI:            e.noiScore(r),
		Energy:         e.energyScore(r),
		Capex:          e.capexScore(r),
		Sustainability: e.sustainabilityScore(r),
		Market:         e.marketScore(r),
	}
}

// ScoreProperty scores p with the weights selected by opts.
func (e *Engine) ScoreProperty(p Property, opts AnalysisOptions) (PropertyScore, error) {
	_, w, err := e.weightsFor(opts)
	if err != nil {
		return PropertyScore{}, err
	}
	return e.scoreProperty(p, w), nil
}

func (e *Engine) scoreProperty(p Property, w Weights) PropertyScore {
	r := e.resolveProperty(p)
	subs := e.subScores(r)
	raw := subs.Weighted(w)
	return PropertyScore{
		PropertyID:      p.ID,
		Name:            p.Name,
		Type:            p.Type,
		Location:        p.Location,
		SubScores:       roundSubScores(subs),
		Score:           round2(raw),
		RiskLevel:       e.riskLevel(raw),
		Grade:           e.Grade(raw),
		HighRisk:        raw < e.cfg.Portfolio.HighRiskPropertyBelow,
		DefaultsApplied: r.defaults,
		raw:             raw,
	}
}

func roundSubScores(s SubScores) SubScores {
	return SubScores{
		Lease:          round2(s.Lease),
		Occupancy:      round2(s.Occupancy),
		NOI:            round2(s.NOI),
		Energy:         round2(s.Energy),
		Capex:          round2(s.Capex),
		Sustainability: round2(s.Sustainability),
		Market:         round2(s.Market),
	}
}

// LeaseScore scores time to lease expiry, nudged up by occupancy. A property
// without an expiry date scores exactly LeaseMissingScore.
func (e *Engine) LeaseScore(p Property) float64 {
	return e.leaseScore(e.resolveProperty(p))
}

func (e *Engine) leaseScore(r resolvedProperty) float64 {
	cfg := e.cfg.Property
	if r.LeaseExpiryDate == nil {
		return cfg.LeaseMissingScore
	}
	days := wholeDays(e.now(), *r.LeaseExpiryDate)
	base := dayBandScore(cfg.LeaseExpiryBands, days, cfg.LeaseExpiryCeiling)
	return math.Min(100, base+r.OccupancyRate*cfg.LeaseOccupancyNudge)
}

func (e *Engine) OccupancyScore(p Property) float64 {
	return e.occupancyScore(e.resolveProperty(p))
}

func (e *Engine) occupancyScore(r resolvedProperty) float64 {
	cfg := e.cfg.Property
	score := bandScore(cfg.OccupancyBands, r.OccupancyRate, cfg.OccupancyFloor)
	score += cfg.TypeOffsets[strings.ToLower(string(r.Type))]
	return clamp(score, 0, 100)
}

// NOIScore scores NOI yield on current value, with a capped bonus for value growth over purchase price.
func (e *Engine) NOIScore(p Property) float64 {
	return e.noiScore(e.resolveProperty(p))
}

func (e *Engine) noiScore(r resolvedProperty) float64 {
	cfg := e.cfg.Property
	if r.CurrentValue <= 0 {
		return 0
	}
	score := bandScore(cfg.YieldBands, r.NOI/r.CurrentValue, cfg.YieldFloor)
	if r.PurchasePrice > 0 && r.CurrentValue > r.PurchasePrice {
		score = math.Min(100, score*(r.CurrentValue/r.PurchasePrice))
	}
	return score
}

func (e *Engine) EnergyScore(p Property) float64 {
	return e.energyScore(e.resolveProperty(p))
}

func (e *Engine) energyScore(r resolvedProperty) float64 {
	cfg := e.cfg.Property
	score := cfg.EPCScores[r.epc]
	if r.PurchaseDate != nil {
		years := e.now().Sub(*r.PurchaseDate).Hours() / 24 / 365.25
		for _, b := range cfg.EnergyAgeBonuses {
			if years < b.BelowYears {
				score += b.Bonus
				break
			}
		}
	}
	return math.Min(100, score)
}

func (e *Engine) CapexScore(p Property) float64 {
	return e.capexScore(e.resolveProperty(p))
}

func (e *Engine) capexScore(r resolvedProperty) float64 {
	score := r.maintenance * 10
	for _, tier := range e.cfg.Property.CapexValueTiers {
		if r.CurrentValue > tier.Min {
			score += tier.Score
			break
		}
	}
	return clamp(score, 0, 100)
}

func (e *Engine) SustainabilityScore(p Property) float64 {
	return e.sustainabilityScore(e.resolveProperty(p))
}

func (e *Engine) sustainabilityScore(r resolvedProperty) float64 {
	share := e.cfg.Property.SustainabilityEnergyShare
	score := share*e.cfg.Property.EPCScores[r.epc] + (1-share)*r.maintenance*10
	return clamp(math.Round(score), 0, 100)
}

func (e *Engine) MarketScore(p Property) float64 {
	return e.marketScore(e.resolveProperty(p))
}

func (e *Engine) marketScore(r resolvedProperty) float64 {
	return clamp(e.MarketDemand(r.Location, r.Type)*100, 0, 100)
}

// MarketDemand looks up the demand index for a location and type.
func (e *Engine) MarketDemand(location string, t PropertyType) float64 {
	if d, ok := e.cfg.Forecast.DemandIndex[DemandKey(location, t)]; ok {
		return clamp(d, 0, 1)
	}
	return e.cfg.Forecast.DefaultDemand
}
