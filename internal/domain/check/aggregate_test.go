package check_test

import (
	"testing"

	"github.com/abdidvp/editgate/internal/domain"
	"github.com/abdidvp/editgate/internal/domain/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(name string, status domain.CheckStatus, sev domain.Severity) domain.CheckOutcome {
	return domain.CheckOutcome{Name: name, Status: status, Severity: sev}
}

func TestAggregate_AllPassed(t *testing.T) {
	v := check.Aggregate([]domain.CheckOutcome{
		outcome(check.NameLint, domain.StatusPassed, domain.SeverityAdvisory),
		outcome(check.NameTypeCheck, domain.StatusPassed, domain.SeverityBlocking),
		outcome(check.NameFormat, domain.StatusPassed, domain.SeverityAdvisory),
	})
	assert.True(t, v.Proceed)
	assert.Empty(t, v.BlockingIssues)
	assert.Empty(t, v.AdvisoryIssues)
	assert.Equal(t, []string{check.NameLint, check.NameTypeCheck, check.NameFormat}, v.PerformedChecks)
}

func TestAggregate_AdvisoryFailureNeverBlocks(t *testing.T) {
	v := check.Aggregate([]domain.CheckOutcome{
		outcome(check.NameLint, domain.StatusFailed, domain.SeverityAdvisory),
		outcome(check.NameStaticAnalysis, domain.StatusFailed, domain.SeverityAdvisory),
	})
	assert.True(t, v.Proceed)
	assert.Len(t, v.AdvisoryIssues, 2)
	assert.Empty(t, v.BlockingIssues)
}

func TestAggregate_BlockingFailure(t *testing.T) {
	v := check.Aggregate([]domain.CheckOutcome{
		outcome(check.NameLint, domain.StatusFailed, domain.SeverityAdvisory),
		outcome(check.NameTypeCheck, domain.StatusPassed, domain.SeverityBlocking),
		outcome(check.NameTest, domain.StatusFailed, domain.SeverityBlocking),
	})
	assert.False(t, v.Proceed)
	require.Len(t, v.BlockingIssues, 1)
	assert.Equal(t, check.NameTest, v.BlockingIssues[0].Name)
	require.Len(t, v.AdvisoryIssues, 1)
	assert.Equal(t, check.NameLint, v.AdvisoryIssues[0].Name)
}

func TestAggregate_PreservesOrderWithinPartitions(t *testing.T) {
	v := check.Aggregate([]domain.CheckOutcome{
		outcome("b1", domain.StatusFailed, domain.SeverityBlocking),
		outcome("a1", domain.StatusFailed, domain.SeverityAdvisory),
		outcome("b2", domain.StatusFailed, domain.SeverityBlocking),
		outcome("a2", domain.StatusFailed, domain.SeverityAdvisory),
	})
	assert.Equal(t, "b1", v.BlockingIssues[0].Name)
	assert.Equal(t, "b2", v.BlockingIssues[1].Name)
	assert.Equal(t, "a1", v.AdvisoryIssues[0].Name)
	assert.Equal(t, "a2", v.AdvisoryIssues[1].Name)
}

func TestAggregate_SkippedNotPerformed(t *testing.T) {
	v := check.Aggregate([]domain.CheckOutcome{
		outcome(check.NameLint, domain.StatusPassed, domain.SeverityAdvisory),
		outcome(check.NameTest, domain.StatusSkipped, domain.SeverityBlocking),
	})
	assert.Equal(t, []string{check.NameLint}, v.PerformedChecks)
	assert.Len(t, v.Outcomes, 2)
	assert.True(t, v.Proceed)
}

func TestAggregate_ProceedIffNoBlockingIssues(t *testing.T) {
	statuses := []domain.CheckStatus{domain.StatusPassed, domain.StatusFailed, domain.StatusSkipped}
	severities := []domain.Severity{domain.SeverityAdvisory, domain.SeverityBlocking}
	for _, s1 := range statuses {
		for _, v1 := range severities {
			for _, s2 := range statuses {
				for _, v2 := range severities {
					v := check.Aggregate([]domain.CheckOutcome{outcome("x", s1, v1), outcome("y", s2, v2)})
					assert.Equal(t, len(v.BlockingIssues) == 0, v.Proceed)
				}
			}
		}
	}
}

func TestAggregate_EmptyIsNoOp(t *testing.T) {
	v := check.Aggregate(nil)
	assert.Equal(t, domain.NoOpVerdict(), v)
}
