package analytics

import (
	"context"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/scoring"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db, Engine: scoring.NewDefaultEngine()}
}

func TestToEngineProperties_DerivesExpiryFromActiveLeases(t *testing.T) {
	pid := uuid.New()
	own := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	soon := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	later := time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	other := uuid.New()
	props := []domain.Property{{PropertyID: pid}, {PropertyID: other, LeaseExpiryDate: &own}}
	leases := []domain.Lease{
		{PropertyID: pid, EndDate: &later, Status: "active"},
		{PropertyID: pid, EndDate: &soon, Status: "Active"},
		{PropertyID: pid, EndDate: &earlier, Status: "expired"},
		{PropertyID: other, EndDate: &soon, Status: "active"},
	}
	got := toEngineProperties(props, leases)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].LeaseExpiryDate)
	assert.True(t, soon.Equal(*got[0].LeaseExpiryDate))
	assert.True(t, own.Equal(*got[1].LeaseExpiryDate))
}

func TestPropertyRecord_ToEngine(t *testing.T) {
	epc := "c"
	p, err := PropertyRecord{ID: "x", Type: " residential ", PurchaseDate: "2019-05-01"}.ToEngine()
	require.NoError(t, err)
	assert.Equal(t, scoring.TypeResidential, p.Type)
	require.NotNil(t, p.PurchaseDate)
	assert.Nil(t, p.LeaseExpiryDate)

	p, err = PropertyRecord{Type: "Barn", EPCRating: &epc}.ToEngine()
	require.NoError(t, err)
	assert.Equal(t, scoring.PropertyType("Barn"), p.Type)

	_, err = PropertyRecord{LeaseExpiryDate: "soonish"}.ToEngine()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestConvertTransactions_NamesBadRow(t *testing.T) {
	_, err := ConvertTransactions([]TransactionRecord{{ID: "ok"}, {ID: "bad", DueDate: "tomorrow"}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorContains(t, err, "transactions[1]")
}

func TestPortfolioRequest_Options(t *testing.T) {
	opts := PortfolioRequest{Strategy: "growth", Enhanced: true, CustomWeights: map[string]float64{" Lease ": 1}}.Options()
	assert.Equal(t, scoring.Strategy("growth"), opts.Strategy)
	assert.True(t, opts.Enhanced)
	assert.Equal(t, 1.0, opts.CustomWeights[scoring.Factor("lease")])
}

func TestSaveSummary_KindsAndHistory(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	orgID := uuid.New()

	analysis, err := svc.ScoreProperties(nil, scoring.AnalysisOptions{Strategy: scoring.StrategyGrowth})
	require.NoError(t, err)
	row, err := svc.SaveSummary(ctx, orgID, nil, analysis)
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisPortfolio, row.Kind)
	require.NotNil(t, row.Strategy)
	assert.Equal(t, "growth", *row.Strategy)

	report := svc.Reconcile(nil, nil)
	row, err = svc.SaveSummary(ctx, orgID, nil, report)
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisReconcile, row.Kind)

	_, err = svc.SaveSummary(ctx, orgID, nil, "not an analysis")
	assert.Error(t, err)

	_, err = svc.SaveSummary(ctx, uuid.Nil, nil, report)
	assert.Error(t, err)

	all, err := svc.History(ctx, orgID, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := svc.History(ctx, orgID, domain.AnalysisReconcile, 10)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, domain.AnalysisReconcile, only[0].Kind)

	none, err := svc.History(ctx, uuid.New(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
