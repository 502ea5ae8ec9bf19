package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider      *metric.MeterProvider
	meter              otelmetric.Meter
	comparisonCounter  otelmetric.Int64Counter
	comparisonDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	comparisonCounter, _ := meter.Int64Counter(
		"comparisons.processed",
		otelmetric.WithDescription("Number of comparison runs processed"),
	)

	comparisonDuration, _ := meter.Float64Histogram(
		"comparisons.duration",
		otelmetric.WithDescription("Comparison run duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		meter:              meter,
		comparisonCounter:  comparisonCounter,
		comparisonDuration: comparisonDuration,
	}
}

func (o *Observability) RecordComparisonProcessed(ctx context.Context, status string) {
	if o.comparisonCounter != nil {
		o.comparisonCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordComparisonDuration(ctx context.Context, duration time.Duration, status string) {
	if o.comparisonDuration != nil {
		o.comparisonDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
