package scoring

import (
	"math"
	"sort"
)

type UtilizationClass string

const (
	ClassOvercrowded   UtilizationClass = "Overcrowded"
	ClassUnderutilized UtilizationClass = "Underutilized"
	ClassEfficient     UtilizationClass = "Efficient"
)

type Utilization struct {
	PropertyID         string           `json:"property_id"`
	UtilizationRate    float64          `json:"utilization_rate"`
	EfficiencyScore    float64          `json:"efficiency_score"`
	Classification     UtilizationClass `json:"classification"`
	ParkingUtilization float64          `json:"parking_utilization"`
}

type OccupancySummary struct {
	Readings           []Utilization            `json:"readings"`
	AverageUtilization float64                  `json:"average_utilization"`
	AverageEfficiency  float64                  `json:"average_efficiency"`
	Classes            map[UtilizationClass]int `json:"classes"`
}

// Utilization classifies one reading. A reading without area yields zero
// utilization and efficiency.
func (e *Engine) Utilization(r OccupancyReading) Utilization {
	cfg := e.cfg.Occupancy
	u := Utilization{PropertyID: r.PropertyID}
	if r.TotalArea > 0 {
		rate := r.OccupiedArea / r.TotalArea
		u.UtilizationRate = round4(rate)
		u.EfficiencyScore = round2(rate * (1 - r.CommonArea/r.TotalArea) * 100)
	}
	if r.TotalParking > 0 {
		u.ParkingUtilization = round4(float64(r.OccupiedParking) / float64(r.TotalParking))
	}
	switch {
	case u.UtilizationRate > cfg.OvercrowdedAbove:
		u.Classification = ClassOvercrowded
	case u.UtilizationRate < cfg.UnderutilizedBelow:
		u.Classification = ClassUnderutilized
	default:
		u.Classification = ClassEfficient
	}
	return u
}

func (e *Engine) OccupancySummary(readings []OccupancyReading) OccupancySummary {
	s := OccupancySummary{
		Readings: make([]Utilization, 0, len(readings)),
		Classes:  map[UtilizationClass]int{ClassOvercrowded: 0, ClassUnderutilized: 0, ClassEfficient: 0},
	}
	rates := make([]float64, 0, len(readings))
	eff := make([]float64, 0, len(readings))
	for _, r := range readings {
		u := e.Utilization(r)
		s.Readings = append(s.Readings, u)
		s.Classes[u.Classification]++
		rates = append(rates, u.UtilizationRate)
		eff = append(eff, u.EfficiencyScore)
	}
	s.AverageUtilization = round4(mean(rates))
	s.AverageEfficiency = round2(mean(eff))
	return s
}

type LeaseRisk struct {
	PropertyID       string    `json:"property_id"`
	Name             string    `json:"name,omitempty"`
	Score            float64   `json:"score"`
	Level            RiskLevel `json:"level"`
	Action           string    `json:"action"`
	EPCPenalty       float64   `json:"epc_penalty"`
	OccupancyPenalty float64   `json:"occupancy_penalty"`
	MarketPenalty    float64   `json:"market_penalty"`
	ExpiryPenalty    float64   `json:"expiry_penalty"`
	DaysToExpiry     *int      `json:"days_to_expiry,omitempty"`
}

type LeaseRiskReport struct {
	Properties  []LeaseRisk `json:"properties"`
	Priorities  []LeaseRisk `json:"priorities"`
	HighCount   int         `json:"high_count"`
	MediumCount int         `json:"medium_count"`
	LowCount    int         `json:"low_count"`
}

var leaseRiskActions = map[RiskLevel]string{
	RiskHigh:   "Open renewal negotiations now and line up replacement tenants",
	RiskMedium: "Schedule a tenant review before the next rent period",
	RiskLow:    "Monitor through the standard lease review cycle",
}

// LeaseRisk sums the EPC weight, occupancy shortfall, market weakness and
// expiry proximity penalties, capped at 100. A missing expiry adds nothing.
func (e *Engine) LeaseRisk(p Property) LeaseRisk {
	cfg := e.cfg.LeaseRisk
	r := e.resolveProperty(p)
	lr := LeaseRisk{PropertyID: r.ID, Name: r.Name}

	lr.EPCPenalty = cfg.EPCRiskWeights[r.epc]
	lr.OccupancyPenalty = round2(math.Min(cfg.ShortfallCap, math.Max(0, cfg.OccupancyTarget-r.OccupancyRate)*100))
	lr.MarketPenalty = round2(math.Max(0, cfg.MarketNeutralDemand-e.MarketDemand(r.Location, r.Type)) * cfg.MarketPenaltyFactor)
	if r.LeaseExpiryDate != nil {
		days := wholeDays(e.now(), *r.LeaseExpiryDate)
		lr.DaysToExpiry = &days
		lr.ExpiryPenalty = dayBandScore(cfg.ExpiryPenalties, days, 0)
	}

	lr.Score = round2(math.Min(100, lr.EPCPenalty+lr.OccupancyPenalty+lr.MarketPenalty+lr.ExpiryPenalty))
	switch {
	case lr.Score >= cfg.HighMin:
		lr.Level = RiskHigh
	case lr.Score >= cfg.MediumMin:
		lr.Level = RiskMedium
	default:
		lr.Level = RiskLow
	}
	lr.Action = leaseRiskActions[lr.Level]
	return lr
}

// LeaseRiskReport scores every property and lists the highest scores first as
// priorities. Ties keep input order.
func (e *Engine) LeaseRiskReport(props []Property) LeaseRiskReport {
	rep := LeaseRiskReport{Properties: make([]LeaseRisk, 0, len(props))}
	for _, p := range props {
		lr := e.LeaseRisk(p)
		rep.Properties = append(rep.Properties, lr)
		switch lr.Level {
		case RiskHigh:
			rep.HighCount++
		case RiskMedium:
			rep.MediumCount++
		default:
			rep.LowCount++
		}
	}

	sorted := append([]LeaseRisk(nil), rep.Properties...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	limit := e.cfg.LeaseRisk.PriorityLimit
	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}
	rep.Priorities = sorted[:limit]
	return rep
}
