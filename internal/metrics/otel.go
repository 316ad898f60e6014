package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "fixtures-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx              context.Context
	meter            metric.Meter
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	scrapeAttempts   metric.Int64Counter
	scrapeErrors     metric.Int64Counter
	scrapeLatencyMs  metric.Float64Histogram
	rowsSkipped      metric.Int64Counter
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	warmerCycles     metric.Int64Counter
	warmerErrors     metric.Int64Counter
	warmerLatencyMs  metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("fixtures-service")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}
	scrapeAttempts, err := meter.Int64Counter("lms_scrape_attempts_total")
	if err != nil {
		return nil, err
	}
	scrapeErrors, err := meter.Int64Counter("lms_scrape_errors_total")
	if err != nil {
		return nil, err
	}
	scrapeLatency, err := meter.Float64Histogram("lms_scrape_duration_ms")
	if err != nil {
		return nil, err
	}
	rowsSkipped, err := meter.Int64Counter("lms_rows_skipped_total")
	if err != nil {
		return nil, err
	}
	cacheHits, err := meter.Int64Counter("fixtures_cache_hits_total")
	if err != nil {
		return nil, err
	}
	cacheMisses, err := meter.Int64Counter("fixtures_cache_misses_total")
	if err != nil {
		return nil, err
	}
	warmerCycles, err := meter.Int64Counter("warmer_cycles_total")
	if err != nil {
		return nil, err
	}
	warmerErrors, err := meter.Int64Counter("warmer_errors_total")
	if err != nil {
		return nil, err
	}
	warmerLatency, err := meter.Float64Histogram("warmer_cycle_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:              ctx,
		meter:            meter,
		requests:         requests,
		requestLatencyMs: requestLatency,
		scrapeAttempts:   scrapeAttempts,
		scrapeErrors:     scrapeErrors,
		scrapeLatencyMs:  scrapeLatency,
		rowsSkipped:      rowsSkipped,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
		warmerCycles:     warmerCycles,
		warmerErrors:     warmerErrors,
		warmerLatencyMs:  warmerLatency,
	}, nil
}

func (o *otelInstruments) recordScrape(team string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String(AttrTeam, team))
	o.scrapeAttempts.Add(o.ctx, 1, attrs)
	o.scrapeLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		o.scrapeErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRowSkipped(team, reason string) {
	o.rowsSkipped.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrTeam, team),
		attribute.String(AttrReason, reason),
	))
}

func (o *otelInstruments) recordCacheRead(hit bool) {
	if hit {
		o.cacheHits.Add(o.ctx, 1)
		return
	}
	o.cacheMisses.Add(o.ctx, 1)
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.String(AttrStatus, strconv.Itoa(status)),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
}

func (o *otelInstruments) recordWarmerCycle(duration time.Duration, err error) {
	o.warmerCycles.Add(o.ctx, 1)
	o.warmerLatencyMs.Record(o.ctx, float64(duration.Milliseconds()))
	if err != nil {
		o.warmerErrors.Add(o.ctx, 1)
	}
}
