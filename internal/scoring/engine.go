// Package scoring turns portfolio records into weighted health and risk scores.
// Every function is pure over its inputs, the configuration and the clock, so an
// Engine may be shared across goroutines.
package scoring

import (
	"fmt"
	"time"
)

type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine normalizes and validates cfg.
func NewEngine(cfg Config) (*Engine, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return &Engine{cfg: cfg, now: time.Now}, nil
}

// NewDefaultEngine builds an engine over DefaultConfig.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

// WithClock returns a copy of e that reads the current time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	cp := *e
	cp.now = now
	return &cp
}

// AnalysisOptions selects the weight set for a portfolio analysis. CustomWeights,
// when set, replace the strategy preset and must pass ValidateWeights.
type AnalysisOptions struct {
	Strategy      Strategy `json:"strategy"`
	Enhanced      bool     `json:"enhanced"`
	CustomWeights Weights  `json:"custom_weights,omitempty"`
}

func (e *Engine) weightsFor(opts AnalysisOptions) (Strategy, Weights, error) {
	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return "", nil, err
	}
	if len(opts.CustomWeights) > 0 {
		if err := ValidateWeights(opts.CustomWeights, opts.Enhanced); err != nil {
			return "", nil, err
		}
		w := make(Weights, len(opts.CustomWeights))
		for k, v := range opts.CustomWeights {
			w[k] = v
		}
		return strategy, w, nil
	}
	w, err := e.cfg.WeightsFor(strategy, opts.Enhanced)
	if err != nil {
		return "", nil, err
	}
	return strategy, w, nil
}
