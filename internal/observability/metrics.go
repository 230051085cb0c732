// Package observability provides OpenTelemetry instrumentation for tracing and metrics.
package observability

import (
	"context"
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes the OpenTelemetry metrics provider with a Prometheus exporter.
// It returns the HTTP handler for the /metrics endpoint and a shutdown function.
// Each call uses its own registry, which also carries Go runtime and process collectors.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	registry := prom.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, nil, fmt.Errorf("failed to register process collector: %w", err)
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), provider.Shutdown, nil
}

// ItemCounter reports how many items are stored.
type ItemCounter interface {
	CountItems(ctx context.Context) (int64, error)
}

// RegisterItemGauge adds an observable gauge that queries counter only when scraped.
// onErr is called when the count fails; the scrape itself still succeeds.
func RegisterItemGauge(meter metric.Meter, counter ItemCounter, onErr func(error)) error {
	_, err := meter.Int64ObservableGauge("itemplane.items.count",
		metric.WithDescription("Current number of stored items"),
		metric.WithInt64Callback(func(ctx context.Context, obs metric.Int64Observer) error {
			count, err := counter.CountItems(ctx)
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				return nil
			}
			obs.Observe(count)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to register item gauge: %w", err)
	}
	return nil
}
