package scoring

import (
	"fmt"
	"time"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// escalate moves a level one band toward High.
func (l RiskLevel) escalate() RiskLevel {
	switch l {
	case RiskLow:
		return RiskMedium
	default:
		return RiskHigh
	}
}

type PortfolioAnalysis struct {
	Strategy          Strategy        `json:"strategy"`
	Enhanced          bool            `json:"enhanced"`
	Weights           Weights         `json:"weights"`
	PropertyCount     int             `json:"property_count"`
	HealthScore       float64         `json:"health_score"`
	RiskLevel         RiskLevel       `json:"risk_level"`
	Grade             string          `json:"grade"`
	ConcentrationRisk bool            `json:"concentration_risk"`
	WeakPropertyRatio float64         `json:"weak_property_ratio"`
	HighRiskCount     int             `json:"high_risk_count"`
	Properties        []PropertyScore `json:"properties"`
	Recommendations   []string        `json:"recommendations"`
	AnalyzedAt        time.Time       `json:"analyzed_at"`
}

func (e *Engine) riskLevel(score float64) RiskLevel {
	switch {
	case score >= e.cfg.Portfolio.LowRiskMin:
		return RiskLow
	case score >= e.cfg.Portfolio.MediumRiskMin:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Grade maps an aggregate score onto the letter ladder.
func (e *Engine) Grade(score float64) string {
	for _, g := range e.cfg.Portfolio.Grades {
		if score >= g.Min {
			return g.Grade
		}
	}
	return e.cfg.Portfolio.GradeFloor
}

// AnalyzePortfolio scores every property and rolls them up. Health is the mean
// of the unrounded per-property aggregates; an empty portfolio scores 0.
func (e *Engine) AnalyzePortfolio(props []Property, opts AnalysisOptions) (PortfolioAnalysis, error) {
	strategy, w, err := e.weightsFor(opts)
	if err != nil {
		return PortfolioAnalysis{}, err
	}

	cfg := e.cfg.Portfolio
	scores := make([]PropertyScore, 0, len(props))
	raws := make([]float64, 0, len(props))
	weak, highRisk := 0, 0
	for _, p := range props {
		ps := e.scoreProperty(p, w)
		scores = append(scores, ps)
		raws = append(raws, ps.raw)
		if ps.SubScores.Lease < cfg.WeakSubScoreBelow || ps.SubScores.Occupancy < cfg.WeakSubScoreBelow {
			weak++
		}
		if ps.HighRisk {
			highRisk++
		}
	}

	health := mean(raws)
	level := e.riskLevel(health)
	var ratio float64
	if len(props) > 0 {
		ratio = float64(weak) / float64(len(props))
	}
	concentrated := ratio > cfg.ConcentrationRatio
	if concentrated {
		level = level.escalate()
	}

	a := PortfolioAnalysis{
		Strategy:          strategy,
		Enhanced:          opts.Enhanced,
		Weights:           w,
		PropertyCount:     len(props),
		HealthScore:       round2(health),
		RiskLevel:         level,
		Grade:             e.Grade(health),
		ConcentrationRisk: concentrated,
		WeakPropertyRatio: round2(ratio),
		HighRiskCount:     highRisk,
		Properties:        scores,
		AnalyzedAt:        e.now().UTC(),
	}
	a.Recommendations = e.portfolioRecommendations(health, strategy, highRisk, concentrated)
	return a, nil
}

func (e *Engine) portfolioRecommendations(health float64, strategy Strategy, highRisk int, concentrated bool) []string {
	cfg := e.cfg.Portfolio
	var recs []string
	switch {
	case health < cfg.MediumRiskMin:
		recs = append(recs, "Portfolio health is critical: prioritise remediation of underperforming assets")
	case health < cfg.LowRiskMin:
		recs = append(recs, "Portfolio health is moderate: target lease renewals and occupancy improvements")
	default:
		recs = append(recs, "Portfolio health is strong: maintain the current asset management plan")
	}

	switch strategy {
	case StrategyGrowth:
		recs = append(recs, "Growth strategy: reinvest NOI into value-add capex and acquisitions in high-demand markets")
	case StrategyDivest:
		recs = append(recs, "Divest strategy: prepare the weakest assets for disposal while occupancy supports pricing")
	default:
		recs = append(recs, "Hold strategy: focus on tenant retention and stable income")
	}

	if highRisk > 0 {
		recs = append(recs, fmt.Sprintf("%d properties scored below %.0f and need immediate review", highRisk, cfg.HighRiskPropertyBelow))
	}
	if concentrated {
		recs = append(recs, fmt.Sprintf("More than %.0f%% of properties have weak lease or occupancy scores: stagger lease expiries and re-let vacant space", cfg.ConcentrationRatio*100))
	}
	return recs
}
