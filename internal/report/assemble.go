package report

import (
	"strconv"

	"scaph2cc/internal/aggregate"
)

// Assemble builds the report record from computed metrics and build context.
func Assemble(m aggregate.Metrics, ctx Context) Result {
	return Result{
		Consumption:     FormatFloat(m.MeanPower),
		AppID:           ctx.AppID,
		Duration:        FormatFloat(m.Duration),
		Branch:          ctx.Branch,
		CommitSHA:       ctx.CommitSHA,
		Energy:          FormatFloat(m.Energy.MicrowattSeconds),
		EnergyWattHours: m.Energy.WattHours,
		PipelineURL:     ctx.PipelineURL,
	}
}

// FormatFloat renders v as the shortest plain decimal that parses back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseFloat parses a value rendered by FormatFloat.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
