package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	quoteIntake = "quote_intake"

	// Submission metrics
	submissionsTotal = "submissions_total"

	// Job sheet metrics
	jobSheetUploadsTotal = "job_sheet_uploads_total"

	// Email metrics
	emailsSentTotal = "emails_sent_total"

	// Labels
	submissionOutcomeLabel = "outcome"
	uploadStatusLabel      = "status"
	emailKindLabel         = "kind"
	emailStatusLabel       = "status"
)

var submissionsTotalLabels = []string{
	submissionOutcomeLabel,
}

var jobSheetUploadsTotalLabels = []string{
	uploadStatusLabel,
}

var emailsSentTotalLabels = []string{
	emailKindLabel,
	emailStatusLabel,
}

/**
* Metrics definition
**/
var submissionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: quoteIntake,
		Name:      submissionsTotal,
		Help:      "number of quote submissions by outcome",
	},
	submissionsTotalLabels,
)

var jobSheetUploadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: quoteIntake,
		Name:      jobSheetUploadsTotal,
		Help:      "number of job sheet uploads by status",
	},
	jobSheetUploadsTotalLabels,
)

var emailsSentTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: quoteIntake,
		Name:      emailsSentTotal,
		Help:      "number of emails sent by kind and status",
	},
	emailsSentTotalLabels,
)

func IncreaseSubmissionsTotalMetric(outcome string) {
	labels := prometheus.Labels{
		submissionOutcomeLabel: outcome,
	}
	submissionsTotalMetric.With(labels).Inc()
}

func IncreaseJobSheetUploadsTotalMetric(status string) {
	labels := prometheus.Labels{
		uploadStatusLabel: status,
	}
	jobSheetUploadsTotalMetric.With(labels).Inc()
}

func IncreaseEmailsSentTotalMetric(kind, status string) {
	labels := prometheus.Labels{
		emailKindLabel:   kind,
		emailStatusLabel: status,
	}
	emailsSentTotalMetric.With(labels).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(submissionsTotalMetric)
	prometheus.MustRegister(jobSheetUploadsTotalMetric)
	prometheus.MustRegister(emailsSentTotalMetric)
}
