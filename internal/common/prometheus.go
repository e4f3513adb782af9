package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	PayoutTotal                = "payout_total"
	PayoutFailure              = "payout_failure"
	TreasuryAlertTotal         = "treasury_alert_total"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		PayoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PayoutTotal,
			Help: "Count of all confirmed payouts",
		}, []string{"kind"}),
		PayoutFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PayoutFailure,
			Help: "Count of all refused or failed payouts",
		}, []string{"kind", "reason"}),
		TreasuryAlertTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: TreasuryAlertTotal,
			Help: "Count of all low treasury alerts",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}

	PromSummaries = map[string]*prometheus.SummaryVec{}
)
