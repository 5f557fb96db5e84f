package monitor_presale

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StartTimestamp                *prometheus.Desc
	UpForSeconds                  *prometheus.Desc
	SalesInitialized              *prometheus.Desc
	SalesFinalized                *prometheus.Desc
	ContributionsAccepted         *prometheus.Desc
	TokensSold                    *prometheus.Desc
	CurrencyRaised                *prometheus.Desc
	EventsDropped                 *prometheus.Desc
	AverageContributionsPerMinute *prometheus.Desc
	RequestsServed                *prometheus.Desc
	ContributionsSubmitted        *prometheus.Desc
	MessagesPublished             *prometheus.Desc

	ContributionsRejected *prometheus.Desc
	TreasuryErrors        *prometheus.Desc
	DbErrors              *prometheus.Desc
	BadRequests           *prometheus.Desc
	InternalErrors        *prometheus.Desc
	PublishErrors         *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "presale",
	}

	return &Collector{
		StartTimestamp:                prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:                  prometheus.NewDesc("up_for_seconds", "", nil, labels),
		SalesInitialized:              prometheus.NewDesc("sales_initialized", "", nil, labels),
		SalesFinalized:                prometheus.NewDesc("sales_finalized", "", nil, labels),
		ContributionsAccepted:         prometheus.NewDesc("contributions_accepted", "", nil, labels),
		TokensSold:                    prometheus.NewDesc("tokens_sold", "", nil, labels),
		CurrencyRaised:                prometheus.NewDesc("currency_raised", "", nil, labels),
		EventsDropped:                 prometheus.NewDesc("events_dropped", "", nil, labels),
		AverageContributionsPerMinute: prometheus.NewDesc("average_contributions_per_minute", "", nil, labels),
		RequestsServed:                prometheus.NewDesc("requests_served", "", nil, labels),
		ContributionsSubmitted:        prometheus.NewDesc("contributions_submitted", "", nil, labels),
		MessagesPublished:             prometheus.NewDesc("messages_published", "", nil, labels),

		// Errors
		ContributionsRejected: prometheus.NewDesc("error_contributions_rejected", "", nil, labels),
		TreasuryErrors:        prometheus.NewDesc("error_treasury", "", nil, labels),
		DbErrors:              prometheus.NewDesc("error_db", "", nil, labels),
		BadRequests:           prometheus.NewDesc("error_bad_requests", "", nil, labels),
		InternalErrors:        prometheus.NewDesc("error_internal", "", nil, labels),
		PublishErrors:         prometheus.NewDesc("error_publish", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds
	ch <- self.SalesInitialized
	ch <- self.SalesFinalized
	ch <- self.ContributionsAccepted
	ch <- self.TokensSold
	ch <- self.CurrencyRaised
	ch <- self.EventsDropped
	ch <- self.AverageContributionsPerMinute
	ch <- self.RequestsServed
	ch <- self.ContributionsSubmitted
	ch <- self.MessagesPublished

	// Errors
	ch <- self.ContributionsRejected
	ch <- self.TreasuryErrors
	ch <- self.DbErrors
	ch <- self.BadRequests
	ch <- self.InternalErrors
	ch <- self.PublishErrors
}

// Collect implements required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))
	ch <- prometheus.MustNewConstMetric(self.SalesInitialized, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.SalesInitialized.Load()))
	ch <- prometheus.MustNewConstMetric(self.SalesFinalized, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.SalesFinalized.Load()))
	ch <- prometheus.MustNewConstMetric(self.ContributionsAccepted, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.ContributionsAccepted.Load()))
	ch <- prometheus.MustNewConstMetric(self.TokensSold, prometheus.GaugeValue, float64(self.monitor.Report.Ledger.State.TokensSold.Load()))
	ch <- prometheus.MustNewConstMetric(self.CurrencyRaised, prometheus.GaugeValue, float64(self.monitor.Report.Ledger.State.CurrencyRaised.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsDropped, prometheus.CounterValue, float64(self.monitor.Report.Ledger.State.EventsDropped.Load()))
	ch <- prometheus.MustNewConstMetric(self.AverageContributionsPerMinute, prometheus.GaugeValue, self.monitor.Report.Ledger.State.AverageContributionsPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.RequestsServed, prometheus.CounterValue, float64(self.monitor.Report.Gateway.State.RequestsServed.Load()))
	ch <- prometheus.MustNewConstMetric(self.ContributionsSubmitted, prometheus.CounterValue, float64(self.monitor.Report.Gateway.State.ContributionsSubmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.MessagesPublished, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.State.MessagesPublished.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.ContributionsRejected, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.ContributionsRejected.Load()))
	ch <- prometheus.MustNewConstMetric(self.TreasuryErrors, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.TreasuryErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbErrors, prometheus.CounterValue, float64(self.monitor.Report.Ledger.Errors.DbErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.BadRequests, prometheus.CounterValue, float64(self.monitor.Report.Gateway.Errors.BadRequests.Load()))
	ch <- prometheus.MustNewConstMetric(self.InternalErrors, prometheus.CounterValue, float64(self.monitor.Report.Gateway.Errors.InternalErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishErrors, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.Errors.Publish.Load()))
}
