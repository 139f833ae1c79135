package scoring

import "math"

// Forecast is a placeholder single-horizon projection driven by the demand index.
type Forecast struct {
	PropertyID        string   `json:"property_id"`
	MarketDemand      float64  `json:"market_demand"`
	CurrentOccupancy  float64  `json:"current_occupancy"`
	ForecastOccupancy float64  `json:"forecast_occupancy"`
	CurrentValue      float64  `json:"current_value"`
	ForecastValue     float64  `json:"forecast_value"`
	GrowthRate        float64  `json:"growth_rate"`
	Confidence        float64  `json:"confidence"`
	HorizonMonths     int      `json:"horizon_months"`
	RiskFactors       []string `json:"risk_factors"`
}

type PortfolioForecast struct {
	Properties        []Forecast `json:"properties"`
	CurrentValue      float64    `json:"current_value"`
	ForecastValue     float64    `json:"forecast_value"`
	ValueChangePct    float64    `json:"value_change_pct"`
	AverageConfidence float64    `json:"average_confidence"`
	RiskFactorCount   int        `json:"risk_factor_count"`
}

const (
	RiskFactorLowOccupancy   = "low_occupancy"
	RiskFactorPoorCondition  = "poor_maintenance"
	RiskFactorPoorEfficiency = "poor_energy_rating"
)

func (e *Engine) ForecastProperty(p Property) Forecast {
	cfg := e.cfg.Forecast
	r := e.resolveProperty(p)
	d := e.MarketDemand(r.Location, r.Type)
	shift := d - 0.5

	growth := cfg.BaseGrowth + shift*cfg.GrowthDemandFactor
	f := Forecast{
		PropertyID:        r.ID,
		MarketDemand:      d,
		CurrentOccupancy:  r.OccupancyRate,
		ForecastOccupancy: round4(clamp(r.OccupancyRate*(1+shift*cfg.OccupancyDemandFactor), 0, 1)),
		CurrentValue:      r.CurrentValue,
		ForecastValue:     round2(r.CurrentValue * (1 + growth)),
		GrowthRate:        round4(growth),
		Confidence:        round4(clamp(cfg.BaseConfidence+shift*cfg.ConfidenceDemandFactor, 0, 1)),
		HorizonMonths:     cfg.HorizonMonths,
		RiskFactors:       []string{},
	}

	if r.OccupancyRate < cfg.RiskOccupancyBelow {
		f.RiskFactors = append(f.RiskFactors, RiskFactorLowOccupancy)
	}
	if r.maintenance < cfg.RiskMaintenanceBelow {
		f.RiskFactors = append(f.RiskFactors, RiskFactorPoorCondition)
	}
	for _, epc := range cfg.RiskEPCRatings {
		if r.epc == epc {
			f.RiskFactors = append(f.RiskFactors, RiskFactorPoorEfficiency)
			break
		}
	}
	return f
}

// ForecastPortfolio sums current and forecast value and averages confidence.
func (e *Engine) ForecastPortfolio(props []Property) PortfolioForecast {
	out := PortfolioForecast{Properties: make([]Forecast, 0, len(props))}
	confidences := make([]float64, 0, len(props))
	for _, p := range props {
		f := e.ForecastProperty(p)
		out.Properties = append(out.Properties, f)
		out.CurrentValue += f.CurrentValue
		out.ForecastValue += f.ForecastValue
		out.RiskFactorCount += len(f.RiskFactors)
		confidences = append(confidences, f.Confidence)
	}
	if out.CurrentValue > 0 {
		out.ValueChangePct = round2((out.ForecastValue - out.CurrentValue) / out.CurrentValue * 100)
	}
	out.CurrentValue = round2(out.CurrentValue)
	out.ForecastValue = round2(out.ForecastValue)
	out.AverageConfidence = round4(mean(confidences))
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
