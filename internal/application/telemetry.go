package application

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/abdidvp/editgate/internal/domain"
)

// Package-level tracer and meter. Both are no-ops unless the host process
// installs an OpenTelemetry SDK.
var (
	tracer = otel.Tracer("editgate.checks")
	meter  = otel.Meter("editgate.checks")
)

var (
	checkRuns     metric.Int64Counter
	checkDuration metric.Float64Histogram
	verdictsTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		checkRuns, err = meter.Int64Counter(
			"editgate_check_runs_total",
			metric.WithDescription("Checks executed, by check and status"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		checkDuration, err = meter.Float64Histogram(
			"editgate_check_duration_seconds",
			metric.WithDescription("Wall time of external check tools"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		verdictsTotal, err = meter.Int64Counter(
			"editgate_verdicts_total",
			metric.WithDescription("Verdicts returned, by proceed"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startCheckSpan(ctx context.Context, def domain.CheckDefinition, facts domain.PathFacts) (context.Context, trace.Span) {
	return tracer.Start(ctx, "CheckRunner.Run",
		trace.WithAttributes(
			attribute.String("check.id", string(def.ID)),
			attribute.String("check.severity", string(def.Severity)),
			attribute.String("file.language", string(facts.Language)),
			attribute.String("file.zone", string(facts.Zone)),
		),
	)
}

func endCheckSpan(span trace.Span, out domain.CheckOutcome, err error) {
	span.SetAttributes(
		attribute.String("check.status", string(out.Status)),
		attribute.Int("check.exit_code", out.ExitCode),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func recordCheckMetrics(ctx context.Context, def domain.CheckDefinition, status string, d time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("check", string(def.ID)),
		attribute.String("status", status),
	)
	checkRuns.Add(ctx, 1, attrs)
	checkDuration.Record(ctx, d.Seconds(), attrs)
}

func recordVerdict(ctx context.Context, v domain.Verdict) {
	if err := initMetrics(); err != nil {
		return
	}
	verdictsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("proceed", v.Proceed),
		attribute.Int("blocking", len(v.BlockingIssues)),
	))
}
