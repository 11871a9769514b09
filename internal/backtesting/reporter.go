package backtesting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Bl8k38500/liquirium/internal/chartlog"
)

// Reporter renders a chartlog.Artifact as human-readable text.
type Reporter struct{}

// NewReporter creates a new reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// GenerateReport formats every market's snapshot series in artifact.
func (r *Reporter) GenerateReport(artifact chartlog.Artifact) string {
	var sb strings.Builder

	sb.WriteString("═══════════════════════════════════════════════════════\n")
	sb.WriteString("              BACKTEST CHART DATA REPORT\n")
	sb.WriteString("═══════════════════════════════════════════════════════\n\n")

	keys := make([]string, 0, len(artifact.Series))
	for key := range artifact.Series {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		series := artifact.Series[key]
		sb.WriteString(fmt.Sprintf("Market: %s (%d aggregated candles)\n", key, len(series.Snapshots)))
		sb.WriteString("───────────────────────────────────────────────────────\n")

		for _, snap := range series.Snapshots {
			sb.WriteString(fmt.Sprintf("%s -> %s\n", snap.OpenTime.Format("2006-01-02 15:04"), snap.CloseTime.Format("2006-01-02 15:04")))
			for _, name := range sortedNames(snap.StartValues) {
				sb.WriteString(fmt.Sprintf("  open.%s  = %v\n", name, snap.StartValues[name]))
			}
			for _, name := range sortedNames(snap.EndValues) {
				sb.WriteString(fmt.Sprintf("  close.%s = %v\n", name, snap.EndValues[name]))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("═══════════════════════════════════════════════════════\n")
	return sb.String()
}

// GenerateSummary formats a one-line summary per market.
func (r *Reporter) GenerateSummary(artifact chartlog.Artifact) string {
	keys := make([]string, 0, len(artifact.Series))
	for key := range artifact.Series {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d candles", key, len(artifact.Series[key].Snapshots)))
	}
	return strings.Join(parts, " | ")
}

func sortedNames(values map[string]any) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
