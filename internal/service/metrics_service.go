package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the timetable engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	entriesParsed   prometheus.Counter
	sheetsSkipped   prometheus.Counter
	rowsDropped     prometheus.Counter
	conflictChecks  prometheus.Counter
	conflictsFound  prometheus.Counter
	optimizerRuns   prometheus.Counter
	combinations    prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	entriesParsed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_entries_parsed_total",
		Help: "Total schedule entries produced by the normalizer",
	})

	sheetsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_sheets_skipped_total",
		Help: "Total workbook sheets skipped as non-day tabs or unreadable",
	})

	rowsDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_rows_dropped_total",
		Help: "Total rows removed by the cleaner (invalid or duplicate)",
	})

	conflictChecks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_conflict_checks_total",
		Help: "Total conflict detection runs",
	})

	conflictsFound := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_conflicts_found_total",
		Help: "Total pairwise overlaps reported by the detector",
	})

	optimizerRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_optimizer_runs_total",
		Help: "Total schedule optimization runs",
	})

	combinations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_optimizer_combinations",
		Help:    "Section combinations evaluated per optimization run",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, entriesParsed, sheetsSkipped,
		rowsDropped, conflictChecks, conflictsFound, optimizerRuns, combinations, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		entriesParsed:   entriesParsed,
		sheetsSkipped:   sheetsSkipped,
		rowsDropped:     rowsDropped,
		conflictChecks:  conflictChecks,
		conflictsFound:  conflictsFound,
		optimizerRuns:   optimizerRuns,
		combinations:    combinations,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordParse accounts for one normalizer pass over a source file.
func (m *MetricsService) RecordParse(entries, skippedSheets, droppedRows int) {
	if m == nil {
		return
	}
	m.entriesParsed.Add(float64(entries))
	m.sheetsSkipped.Add(float64(skippedSheets))
	m.rowsDropped.Add(float64(droppedRows))
}

// RecordConflictCheck accounts for one detector run.
func (m *MetricsService) RecordConflictCheck(conflicts int) {
	if m == nil {
		return
	}
	m.conflictChecks.Inc()
	m.conflictsFound.Add(float64(conflicts))
}

// RecordOptimizerRun accounts for one optimization run.
func (m *MetricsService) RecordOptimizerRun(combinationsEvaluated int) {
	if m == nil {
		return
	}
	m.optimizerRuns.Inc()
	m.combinations.Observe(float64(combinationsEvaluated))
}
