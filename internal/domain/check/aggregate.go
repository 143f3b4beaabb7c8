package check

import "github.com/abdidvp/editgate/internal/domain"

// Aggregate folds ordered outcomes into a Verdict. Proceed is false exactly
// when some outcome is a failed blocking check. Skipped outcomes are kept in
// Outcomes but not listed as performed.
func Aggregate(outcomes []domain.CheckOutcome) domain.Verdict {
	v := domain.NoOpVerdict()
	v.Outcomes = append(v.Outcomes, outcomes...)

	for _, o := range outcomes {
		if o.Status == domain.StatusSkipped {
			continue
		}
		v.PerformedChecks = append(v.PerformedChecks, o.Name)

		if o.Status != domain.StatusFailed {
			continue
		}
		if o.Severity == domain.SeverityBlocking {
			v.BlockingIssues = append(v.BlockingIssues, o)
		} else {
			v.AdvisoryIssues = append(v.AdvisoryIssues, o)
		}
	}

	v.Proceed = len(v.BlockingIssues) == 0
	return v
}
