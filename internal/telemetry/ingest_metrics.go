package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// Frame ingestion metrics
	frameIngestCounter  metric.Int64Counter
	frameIngestDuration metric.Float64Histogram
	repCounter          metric.Int64Counter

	frameIngestErrorCounter metric.Int64Counter
)

// InitIngestMetrics initializes frame-ingestion metrics
func InitIngestMetrics() error {
	meter := otel.Meter("rehablink.session")

	var err error

	frameIngestCounter, err = meter.Int64Counter(
		"session.frame.count",
		metric.WithDescription("Number of pose frames ingested"),
		metric.WithUnit("{frame}"),
	)
	if err != nil {
		return err
	}

	frameIngestDuration, err = meter.Float64Histogram(
		"session.frame.duration",
		metric.WithDescription("Duration of frame ingestion including pose inference"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	repCounter, err = meter.Int64Counter(
		"session.rep.count",
		metric.WithDescription("Number of completed repetitions recorded"),
		metric.WithUnit("{rep}"),
	)
	if err != nil {
		return err
	}

	frameIngestErrorCounter, err = meter.Int64Counter(
		"session.frame.errors",
		metric.WithDescription("Number of frame ingestion errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordFrameIngest records one ingested frame and its processing time
func RecordFrameIngest(ctx context.Context, durationMs float64, degraded bool, repCompleted bool) {
	if frameIngestCounter != nil {
		frameIngestCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.Bool("degraded", degraded)),
		)
	}
	if frameIngestDuration != nil {
		frameIngestDuration.Record(ctx, durationMs,
			metric.WithAttributes(attribute.Bool("degraded", degraded)),
		)
	}
	if repCompleted && repCounter != nil {
		repCounter.Add(ctx, 1)
	}
}

// RecordFrameError records a failed frame ingestion
func RecordFrameError(ctx context.Context, errorType string) {
	if frameIngestErrorCounter != nil {
		frameIngestErrorCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("error_type", errorType)),
		)
	}
}
