package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/grandupright/quote-intake/internal/store"
)

type submissionStatsCollector struct {
	store              store.Store
	totalSubmissions   *prometheus.Desc
	submissionsByPiano *prometheus.Desc
}

// NewSubmissionStatsCollector exposes the submissions ledger as gauges,
// recomputed from the store on every scrape.
func NewSubmissionStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_ledger_%s", quoteIntake, name)
	}

	return &submissionStatsCollector{
		store: s,
		totalSubmissions: prometheus.NewDesc(
			fqName("submissions_total"),
			"Total number of submissions in the ledger.",
			nil,
			prometheus.Labels{},
		),
		submissionsByPiano: prometheus.NewDesc(
			fqName("submissions_by_piano_type_total"),
			"Total submissions by piano type.",
			[]string{"piano_type"},
			prometheus.Labels{},
		),
	}
}

func (c *submissionStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalSubmissions
	ch <- c.submissionsByPiano
}

// Collect implements Collector.
func (c *submissionStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("submissions_collector").Errorf("failed to collect submission statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalSubmissions, prometheus.GaugeValue, float64(stats.Total))

	for pianoType, total := range stats.ByPianoType {
		ch <- prometheus.MustNewConstMetric(c.submissionsByPiano, prometheus.GaugeValue, float64(total), pianoType)
	}
}
