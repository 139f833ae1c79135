// Package cli implements portfolio-cli, which scores and reconciles a
// portfolio file offline with the same engine the API uses.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	anasvc "portfolio-backend/internal/application/analytics"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/scoring"

	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// PortfolioFile is the input document read by every command.
type PortfolioFile struct {
	Properties   []anasvc.PropertyRecord    `json:"properties"`
	Leases       []anasvc.LeaseRecord       `json:"leases"`
	Transactions []anasvc.TransactionRecord `json:"transactions"`
}

type options struct {
	configPath string
	format     string
	input      string
}

// NewRootCmd builds the command tree. Output goes to cmd.OutOrStdout.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "portfolio-cli",
		Short:         "Score and reconcile real-estate portfolios from a JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatTable && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q (want table or json)", opts.format)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Scoring config file (YAML or JSON) overriding the defaults")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatTable, "Output format (table|json)")
	root.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "Portfolio JSON file")
	_ = root.MarkPersistentFlagRequired("input")

	root.AddCommand(newScoreCmd(opts), newReconcileCmd(opts))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newScoreCmd(opts *options) *cobra.Command {
	var strategy string
	var enhanced bool
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every property and report portfolio health",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, file, err := load(opts)
			if err != nil {
				return err
			}
			props, err := anasvc.ConvertProperties(file.Properties)
			if err != nil {
				return err
			}
			analysis, err := engine.AnalyzePortfolio(props, scoring.AnalysisOptions{
				Strategy: scoring.Strategy(strategy),
				Enhanced: enhanced,
			})
			if err != nil {
				return err
			}
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}
			renderAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(scoring.StrategyHold), "Investment strategy (growth|hold|divest)")
	cmd.Flags().BoolVarP(&enhanced, "enhanced", "e", false, "Include sustainability and market factors")
	return cmd
}

func newReconcileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Match transactions to leases and score payment risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, file, err := load(opts)
			if err != nil {
				return err
			}
			txs, err := anasvc.ConvertTransactions(file.Transactions)
			if err != nil {
				return err
			}
			leases, err := anasvc.ConvertLeases(file.Leases)
			if err != nil {
				return err
			}
			report := engine.Reconcile(txs, leases)
			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderReconciliation(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func load(opts *options) (*scoring.Engine, PortfolioFile, error) {
	var file PortfolioFile
	cfg, err := config.LoadScoring(opts.configPath)
	if err != nil {
		return nil, file, err
	}
	engine, err := scoring.NewEngine(cfg)
	if err != nil {
		return nil, file, fmt.Errorf("scoring config: %w", err)
	}
	b, err := os.ReadFile(opts.input)
	if err != nil {
		return nil, file, fmt.Errorf("read input: %w", err)
	}
	if err := json.Unmarshal(b, &file); err != nil {
		return nil, file, fmt.Errorf("parse input %s: %w", opts.input, err)
	}
	return engine, file, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
