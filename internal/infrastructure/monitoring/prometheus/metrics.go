package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics holds the metric families reported by the screening service.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Screening pipeline
	AssessmentsTotal    *prometheus.CounterVec
	AssessmentDuration  *prometheus.HistogramVec
	ThresholdBreaches   *prometheus.CounterVec
	FactorsClassified   *prometheus.CounterVec
	ClassificationTiers *prometheus.CounterVec

	// Infrastructure
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	EventsPublished  *prometheus.CounterVec
}

var DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// NewAppMetrics registers every metric family on the collector.
func NewAppMetrics(c MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal: c.RegisterCounter("http_requests_total",
			"Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: c.RegisterHistogram("http_request_duration_seconds",
			"HTTP request duration", DefaultHTTPDurationBuckets, "method", "path"),

		AssessmentsTotal: c.RegisterCounter("assessments_total",
			"Entity risk assessments performed", "outcome"),
		AssessmentDuration: c.RegisterHistogram("assessment_duration_seconds",
			"Entity risk assessment duration", DefaultHTTPDurationBuckets, "outcome"),
		ThresholdBreaches: c.RegisterCounter("threshold_breaches_total",
			"Assessments whose total score met the profile threshold"),
		FactorsClassified: c.RegisterCounter("factors_classified_total",
			"Risk factors classified", "category"),
		ClassificationTiers: c.RegisterCounter("classification_tier_total",
			"Classification resolutions by tier", "tier"),

		CacheHitsTotal: c.RegisterCounter("cache_hits_total",
			"Cache hits", "cache"),
		CacheMissesTotal: c.RegisterCounter("cache_misses_total",
			"Cache misses", "cache"),
		EventsPublished: c.RegisterCounter("events_published_total",
			"Events published to the message bus", "topic", "status"),
	}
}
