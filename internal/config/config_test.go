package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"portfolio-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "sqlite:file::memory:")
	t.Setenv("DEFAULT_STRATEGY", "Growth")
	t.Setenv("SAVE_ANALYSES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite:file::memory:", cfg.DatabaseURL)
	assert.Equal(t, "growth", cfg.DefaultStrategy)
	assert.True(t, cfg.SaveAnalyses)
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	t.Setenv("DEFAULT_STRATEGY", "flip")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, scoring.ErrUnknownStrategy))
}

func TestLoadScoring_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadScoring("")
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultConfig().Weights, cfg.Weights)
}

func TestLoadScoring_OverlaysFile(t *testing.T) {
	path := writeFile(t, "scoring.yaml", `
weights:
  hold:
    lease: 0.4
    occupancy: 0.3
    noi: 0.3
property:
  occupancy_bands:
    - min: 0.9
      score: 100
  occupancy_floor: 40
  epc_scores:
    a: 100
    b: 90
    c: 80
    d: 60
    e: 40
    f: 20
    g: 5
transactions:
  reconciliation_tolerance: 0.02
`)
	cfg, err := LoadScoring(path)
	require.NoError(t, err)

	assert.Equal(t, scoring.Weights{scoring.FactorLease: 0.4, scoring.FactorOccupancy: 0.3, scoring.FactorNOI: 0.3}, cfg.Weights[scoring.StrategyHold])
	assert.Equal(t, scoring.DefaultConfig().Weights[scoring.StrategyGrowth], cfg.Weights[scoring.StrategyGrowth])
	assert.Equal(t, []scoring.Band{{Min: 0.9, Score: 100}}, cfg.Property.OccupancyBands)
	assert.Equal(t, 40.0, cfg.Property.OccupancyFloor)
	assert.Equal(t, 90.0, cfg.Property.EPCScores["B"])
	assert.Len(t, cfg.Property.EPCScores, 7)
	assert.Equal(t, 0.02, cfg.Transactions.ReconciliationTolerance)
	assert.Equal(t, 0.30, cfg.Portfolio.ConcentrationRatio)

	e, err := scoring.NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 40.0, e.OccupancyScore(scoring.Property{Type: scoring.TypeOffice, OccupancyRate: 0.5}))
}

func TestLoadScoring_RejectsBadWeights(t *testing.T) {
	path := writeFile(t, "scoring.json", `{"weights": {"divest": {"lease": 0.9, "noi": 0.3}}}`)
	_, err := LoadScoring(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scoring.ErrInvalidWeights))
}

func TestLoadScoring_MissingFile(t *testing.T) {
	_, err := LoadScoring(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
