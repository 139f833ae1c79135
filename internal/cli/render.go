package cli

import (
	"fmt"
	"io"
	"strings"

	"portfolio-backend/internal/scoring"

	"github.com/charmbracelet/lipgloss"
)

type printStyles struct {
	header lipgloss.Style
	cell   lipgloss.Style
	low    lipgloss.Style
	medium lipgloss.Style
	high   lipgloss.Style
	dim    lipgloss.Style
}

func newPrintStyles() printStyles {
	return printStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		cell:   lipgloss.NewStyle().PaddingRight(2),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		medium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		high:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s printStyles) level(l scoring.RiskLevel) lipgloss.Style {
	switch l {
	case scoring.RiskHigh:
		return s.high
	case scoring.RiskMedium:
		return s.medium
	default:
		return s.low
	}
}

// table pads every column to its widest cell. Widths are measured before
// styling so colour codes do not skew alignment.
func table(w io.Writer, s printStyles, headers []string, rows [][]string, style func(row, col int) lipgloss.Style) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if n := lipgloss.Width(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	line := func(cells []string, pick func(col int) lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = s.cell.Render(pick(i).Render(c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, ""), " "))
	}
	line(headers, func(int) lipgloss.Style { return s.header })
	for i, r := range rows {
		row := i
		line(r, func(col int) lipgloss.Style { return style(row, col) })
	}
}

func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func renderAnalysis(w io.Writer, a scoring.PortfolioAnalysis) {
	s := newPrintStyles()
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("Portfolio analysis (%s strategy)", a.Strategy)))
	fmt.Fprintf(w, "Health %s  Grade %s  Risk %s  Properties %d\n",
		num(a.HealthScore), a.Grade, s.level(a.RiskLevel).Render(string(a.RiskLevel)), a.PropertyCount)
	fmt.Fprintln(w)

	headers := []string{"ID", "TYPE", "LOCATION", "LEASE", "OCC", "NOI", "ENERGY", "CAPEX"}
	if a.Enhanced {
		headers = append(headers, "SUST", "MARKET")
	}
	headers = append(headers, "SCORE", "GRADE", "RISK")
	rows := make([][]string, 0, len(a.Properties))
	for _, p := range a.Properties {
		sub := p.SubScores
		row := []string{p.PropertyID, string(p.Type), p.Location, num(sub.Lease), num(sub.Occupancy), num(sub.NOI), num(sub.Energy), num(sub.Capex)}
		if a.Enhanced {
			row = append(row, num(sub.Sustainability), num(sub.Market))
		}
		rows = append(rows, append(row, num(p.Score), p.Grade, string(p.RiskLevel)))
	}
	riskCol := len(headers) - 1
	table(w, s, headers, rows, func(row, col int) lipgloss.Style {
		if col == riskCol {
			return s.level(a.Properties[row].RiskLevel)
		}
		return lipgloss.NewStyle()
	})

	for _, p := range a.Properties {
		if len(p.DefaultsApplied) > 0 {
			fmt.Fprintln(w, s.dim.Render(fmt.Sprintf("%s: defaulted %s", p.PropertyID, strings.Join(p.DefaultsApplied, ", "))))
		}
	}
	fmt.Fprintln(w)
	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "- %s\n", r)
	}
}

func renderReconciliation(w io.Writer, r scoring.ReconciliationReport) {
	s := newPrintStyles()
	fmt.Fprintln(w, s.header.Render("Transaction reconciliation"))
	fmt.Fprintf(w, "Reconciled %d of %d (%s%%)  Flagged %d  High risk %d\n",
		r.Reconciled, r.TotalTransactions, num(r.ReconciliationRate), r.Flagged, r.HighRiskCount)
	fmt.Fprintln(w)

	headers := []string{"TRANSACTION", "PROPERTY", "TENANT", "ACTUAL", "EXPECTED", "ISSUE", "RISK", "LEVEL"}
	rows := make([][]string, 0, len(r.Results))
	for i, res := range r.Results {
		expected := "-"
		if res.Expected != nil {
			expected = num(*res.Expected)
		}
		issue := "ok"
		if res.Issue != "" {
			issue = string(res.Issue)
		}
		risk := r.Risks[i]
		rows = append(rows, []string{res.TransactionID, res.PropertyID, res.TenantName, num(res.Actual), expected, issue, num(risk.Score), string(risk.Level)})
	}
	table(w, s, headers, rows, func(row, col int) lipgloss.Style {
		if col == len(headers)-1 {
			return s.level(r.Risks[row].Level)
		}
		return lipgloss.NewStyle()
	})
	fmt.Fprintln(w)
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "- %s\n", rec)
	}
}
