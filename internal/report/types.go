// Package report assembles the energy report of one process together with
// its build context, and writes it in the CarbonCrush JSON format.
package report

// Context is the build context a measurement run belongs to.
type Context struct {
	AppID       string
	Branch      string
	CommitSHA   string
	PipelineURL string
}

// Result is the report record.
// Numeric fields are decimal text except EnergyWattHours.
type Result struct {
	Consumption     string  `json:"consumption"`     // Mean power in microwatts
	AppID           string  `json:"appId"`           // Application id
	Duration        string  `json:"duration"`        // Active duration in seconds
	Branch          string  `json:"branch"`          // Source branch
	CommitSHA       string  `json:"commitSha"`       // Commit identifier
	Energy          string  `json:"energy"`          // Microwatt-seconds
	EnergyWattHours float64 `json:"energyWattHours"` // Watt-hours
	PipelineURL     string  `json:"ciPipelineUrl"`   // CI pipeline URL
}
