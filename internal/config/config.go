package config

import (
	"fmt"
	"strings"

	"portfolio-backend/internal/scoring"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	ScoringConfigFile   string // optional YAML/JSON file overriding scoring.DefaultConfig
	DefaultStrategy     string
	SaveAnalyses        bool // persist an AnalysisSummary for every analytics run unless ?save=false
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEFAULT_STRATEGY", string(scoring.StrategyHold))

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" && env != "production" {
		dbURL = "sqlite:portfolio.db"
	}

	strategy, err := scoring.ParseStrategy(viper.GetString("DEFAULT_STRATEGY"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_STRATEGY: %w", err)
	}

	return &Config{
		Env:                 env,
		Port:                viper.GetString("PORT"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		ScoringConfigFile:   viper.GetString("SCORING_CONFIG_FILE"),
		DefaultStrategy:     string(strategy),
		SaveAnalyses:        viper.GetBool("SAVE_ANALYSES"),
	}, nil
}

// LoadScoring returns scoring.DefaultConfig overlaid with the values in path.
// An empty path returns the defaults. Keys missing from the file keep their
// default. Tables and band lists present in the file replace the default
// wholesale; weight presets are replaced one strategy at a time.
func LoadScoring(path string) (scoring.Config, error) {
	cfg := scoring.DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read scoring config %s: %w", path, err)
	}
	resetListsSetIn(v, &cfg)
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode scoring config %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("scoring config %s: %w", path, err)
	}
	return cfg, nil
}

// resetListsSetIn drops default tables that the file provides. Without this a
// shorter band list keeps trailing defaults, and lower-cased EPC keys from the
// file would sit beside the upper-cased defaults.
func resetListsSetIn(v *viper.Viper, cfg *scoring.Config) {
	lists := map[string]func(){
		"property.lease_expiry_bands": func() { cfg.Property.LeaseExpiryBands = nil },
		"property.occupancy_bands":    func() { cfg.Property.OccupancyBands = nil },
		"property.yield_bands":        func() { cfg.Property.YieldBands = nil },
		"property.energy_age_bonuses": func() { cfg.Property.EnergyAgeBonuses = nil },
		"property.capex_value_tiers":  func() { cfg.Property.CapexValueTiers = nil },
		"portfolio.grades":            func() { cfg.Portfolio.Grades = nil },
		"forecast.risk_epc_ratings":   func() { cfg.Forecast.RiskEPCRatings = nil },
		"lease_risk.expiry_penalties": func() { cfg.LeaseRisk.ExpiryPenalties = nil },
		"property.epc_scores":         func() { cfg.Property.EPCScores = nil },
		"property.type_offsets":       func() { cfg.Property.TypeOffsets = nil },
		"transactions.type_penalties": func() { cfg.Transactions.TypePenalties = nil },
		"forecast.demand_index":       func() { cfg.Forecast.DemandIndex = nil },
		"lease_risk.epc_risk_weights": func() { cfg.LeaseRisk.EPCRiskWeights = nil },
	}
	for key, reset := range lists {
		if v.IsSet(key) {
			reset()
		}
	}
}
