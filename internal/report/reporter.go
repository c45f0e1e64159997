package report

import (
	"fmt"
	"strings"

	"scaph2cc/internal/aggregate"
)

// FormatCLI formats a one-line summary for terminal output.
func FormatCLI(r Result) string {
	return fmt.Sprintf("Done. Average consumption: %s µW, Duration: %s s, Total energy: %s µWs (%s Wh)\n",
		r.Consumption, r.Duration, r.Energy, FormatFloat(r.EnergyWattHours))
}

// FormatDetails formats the metrics behind a report for verbose output.
func FormatDetails(m aggregate.Metrics, pids []int64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  Process: %s\n", m.Process))
	sb.WriteString(fmt.Sprintf("  Samples: %d\n", m.Samples))
	sb.WriteString(fmt.Sprintf("  PIDs: %s\n", formatPIDs(pids)))
	sb.WriteString(fmt.Sprintf("  First: %s\n", FormatFloat(m.FirstTimestamp)))
	sb.WriteString(fmt.Sprintf("  Last: %s\n", FormatFloat(m.LastTimestamp)))
	return sb.String()
}

func formatPIDs(pids []int64) string {
	if len(pids) == 0 {
		return "(none)"
	}
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = fmt.Sprintf("%d", pid)
	}
	return strings.Join(parts, ", ")
}
