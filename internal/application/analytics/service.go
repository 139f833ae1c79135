package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-backend/internal/application/leases"
	"portfolio-backend/internal/application/occupancy"
	"portfolio-backend/internal/application/properties"
	"portfolio-backend/internal/application/transactions"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxHistory bounds History results.
const maxHistory = 100

// Service loads stored records, runs the scoring engine over them and keeps
// an audit trail of results. Results are recomputed on every call.
type Service struct {
	DB     *gorm.DB
	Engine *scoring.Engine
}

func (s *Service) properties() *properties.Service     { return &properties.Service{DB: s.DB} }
func (s *Service) leases() *leases.Service             { return &leases.Service{DB: s.DB} }
func (s *Service) transactions() *transactions.Service { return &transactions.Service{DB: s.DB} }
func (s *Service) occupancy() *occupancy.Service       { return &occupancy.Service{DB: s.DB} }

func (s *Service) loadProperties(ctx context.Context, orgID uuid.UUID) ([]scoring.Property, error) {
	props, err := s.properties().ListProperties(ctx, orgID, properties.ListFilter{})
	if err != nil {
		return nil, err
	}
	ls, err := s.leases().ListLeases(ctx, orgID, nil)
	if err != nil {
		return nil, err
	}
	return toEngineProperties(props, ls), nil
}

// ScoreProperties runs a portfolio analysis over caller-supplied records.
func (s *Service) ScoreProperties(props []scoring.Property, opts scoring.AnalysisOptions) (scoring.PortfolioAnalysis, error) {
	return s.Engine.AnalyzePortfolio(props, opts)
}

func (s *Service) AnalyzePortfolio(ctx context.Context, orgID uuid.UUID, opts scoring.AnalysisOptions) (scoring.PortfolioAnalysis, error) {
	props, err := s.loadProperties(ctx, orgID)
	if err != nil {
		return scoring.PortfolioAnalysis{}, err
	}
	return s.Engine.AnalyzePortfolio(props, opts)
}

// Reconcile matches caller-supplied transactions against caller-supplied leases.
func (s *Service) Reconcile(txs []scoring.Transaction, ls []scoring.Lease) scoring.ReconciliationReport {
	return s.Engine.Reconcile(txs, ls)
}

func (s *Service) ReconcileStored(ctx context.Context, orgID uuid.UUID, f transactions.ListFilter) (scoring.ReconciliationReport, error) {
	txs, err := s.transactions().ListTransactions(ctx, orgID, f)
	if err != nil {
		return scoring.ReconciliationReport{}, err
	}
	ls, err := s.leases().ListLeases(ctx, orgID, nil)
	if err != nil {
		return scoring.ReconciliationReport{}, err
	}
	return s.Engine.Reconcile(toEngineTransactions(txs), toEngineLeases(ls)), nil
}

func (s *Service) Forecast(ctx context.Context, orgID uuid.UUID) (scoring.PortfolioForecast, error) {
	props, err := s.loadProperties(ctx, orgID)
	if err != nil {
		return scoring.PortfolioForecast{}, err
	}
	return s.Engine.ForecastPortfolio(props), nil
}

// Occupancy classifies the newest reading of each property.
func (s *Service) Occupancy(ctx context.Context, orgID uuid.UUID) (scoring.OccupancySummary, error) {
	readings, err := s.occupancy().LatestReadings(ctx, orgID)
	if err != nil {
		return scoring.OccupancySummary{}, err
	}
	return s.Engine.OccupancySummary(toEngineReadings(readings)), nil
}

func (s *Service) LeaseRisk(ctx context.Context, orgID uuid.UUID) (scoring.LeaseRiskReport, error) {
	props, err := s.loadProperties(ctx, orgID)
	if err != nil {
		return scoring.LeaseRiskReport{}, err
	}
	return s.Engine.LeaseRiskReport(props), nil
}

// SaveSummary stores result with the headline figures of its kind.
func (s *Service) SaveSummary(ctx context.Context, orgID uuid.UUID, requestedBy *uuid.UUID, result interface{}) (*domain.AnalysisSummary, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	row := &domain.AnalysisSummary{
		OrgID:       orgID,
		RequestedBy: requestedBy,
		Payload:     datatypes.JSON(payload),
	}
	switch r := result.(type) {
	case scoring.PortfolioAnalysis:
		row.Kind = domain.AnalysisPortfolio
		row.Strategy = strPtr(string(r.Strategy))
		row.Score = floatPtr(r.HealthScore)
		row.Level = strPtr(string(r.RiskLevel))
		row.ItemCount = r.PropertyCount
	case scoring.ReconciliationReport:
		row.Kind = domain.AnalysisReconcile
		row.Score = floatPtr(r.ReconciliationRate)
		row.ItemCount = r.TotalTransactions
	case scoring.PortfolioForecast:
		row.Kind = domain.AnalysisForecast
		row.Score = floatPtr(r.ValueChangePct)
		row.ItemCount = len(r.Properties)
	case scoring.OccupancySummary:
		row.Kind = domain.AnalysisOccupancy
		row.Score = floatPtr(r.AverageEfficiency)
		row.ItemCount = len(r.Readings)
	case scoring.LeaseRiskReport:
		row.Kind = domain.AnalysisLeaseRisk
		row.ItemCount = len(r.Properties)
		if len(r.Priorities) > 0 {
			row.Score = floatPtr(r.Priorities[0].Score)
			row.Level = strPtr(string(r.Priorities[0].Level))
		}
	default:
		return nil, fmt.Errorf("unsupported analysis result %T", result)
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("Failed to save analysis: %w", err)
	}
	log.Info().Str("org_id", orgID.String()).Str("kind", row.Kind).Str("analysis_id", row.AnalysisID.String()).Msg("analysis saved")
	return row, nil
}

// History lists saved summaries newest first, optionally of one kind.
func (s *Service) History(ctx context.Context, orgID uuid.UUID, kind string, limit int) ([]domain.AnalysisSummary, error) {
	if orgID == uuid.Nil {
		return nil, properties.ErrOrgRequired
	}
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}
	q := s.DB.WithContext(ctx).Where("org_id = ?", orgID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var out []domain.AnalysisSummary
	if err := q.Order(`"createdAt" DESC`).Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch analysis history: %w", err)
	}
	return out, nil
}

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
