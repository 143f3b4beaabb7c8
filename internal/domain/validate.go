package domain

// Verdict is the aggregated result of one invocation.
type Verdict struct {
	InvocationID    string         `json:"invocation_id,omitempty"`
	File            string         `json:"file,omitempty"`
	Proceed         bool           `json:"proceed"`
	BlockingIssues  []CheckOutcome `json:"blocking_issues"`
	AdvisoryIssues  []CheckOutcome `json:"advisory_issues"`
	PerformedChecks []string       `json:"performed_checks"`
	Outcomes        []CheckOutcome `json:"outcomes"`
	Message         string         `json:"message,omitempty"`
}

// NoOpVerdict is returned when nothing needs validating.
func NoOpVerdict() Verdict {
	return Verdict{
		Proceed:         true,
		BlockingIssues:  []CheckOutcome{},
		AdvisoryIssues:  []CheckOutcome{},
		PerformedChecks: []string{},
		Outcomes:        []CheckOutcome{},
	}
}
