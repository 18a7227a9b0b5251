package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles run counters on a dedicated registry. All increment
// methods are nil-safe so components can run without metrics wired.
type Metrics struct {
	Registry         *prometheus.Registry
	KeywordsTotal    prometheus.Counter
	RecordsTotal     prometheus.Counter
	ScreenshotsTotal prometheus.Counter
	FailuresTotal    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	keywords := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_keywords_processed_total",
		Help: "Total number of keywords processed, including failed ones.",
	})
	records := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_records_extracted_total",
		Help: "Total number of part records appended to the workbook.",
	})
	screenshots := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_screenshots_saved_total",
		Help: "Total number of screenshot files written.",
	})
	failures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_keyword_failures_total",
			Help: "Total number of per-keyword failures by reason.",
		},
		[]string{"reason"},
	)

	registry.MustRegister(keywords, records, screenshots, failures)

	return &Metrics{
		Registry:         registry,
		KeywordsTotal:    keywords,
		RecordsTotal:     records,
		ScreenshotsTotal: screenshots,
		FailuresTotal:    failures,
	}
}

// IncKeyword counts one processed keyword.
func (m *Metrics) IncKeyword() {
	if m == nil {
		return
	}
	m.KeywordsTotal.Inc()
}

// AddRecords counts records appended to the sink.
func (m *Metrics) AddRecords(n int) {
	if m == nil {
		return
	}
	m.RecordsTotal.Add(float64(n))
}

// IncScreenshot counts one saved screenshot file.
func (m *Metrics) IncScreenshot() {
	if m == nil {
		return
	}
	m.ScreenshotsTotal.Inc()
}

// IncFailure counts a per-keyword failure under a reason label.
func (m *Metrics) IncFailure(reason string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(reason).Inc()
}

// Summary gathers the registry into a flat name->value map for the
// end-of-run log line.
func (m *Metrics) Summary() map[string]float64 {
	if m == nil {
		return nil
	}

	families, err := m.Registry.Gather()
	if err != nil {
		return nil
	}

	out := make(map[string]float64, len(families))
	for _, family := range families {
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		out[family.GetName()] = total
	}
	return out
}
