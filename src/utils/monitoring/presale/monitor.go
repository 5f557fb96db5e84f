package monitor_presale

import (
	"math"
	"net/http"
	"time"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sealstudios/presale/src/utils/monitoring/report"
	"github.com/sealstudios/presale/src/utils/task"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int

	collector *Collector

	// Contribution throughput
	ContributionCounts *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:            &report.RunReport{},
		Ledger:         &report.LedgerReport{},
		Gateway:        &report.GatewayReport{},
		RedisPublisher: &report.RedisPublisherReport{},
	}

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorContributions)
	return
}

func (self *Monitor) Clear() {
	self.ContributionCounts.Clear()
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize

	self.ContributionCounts = deque.New[uint64](self.historySize)

	return self
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure contribution acceptance speed
func (self *Monitor) monitorContributions() (err error) {
	loaded := self.Report.Ledger.State.ContributionsAccepted.Load()

	self.ContributionCounts.PushBack(loaded)
	if self.ContributionCounts.Len() > self.historySize {
		self.ContributionCounts.PopFront()
	}
	value := float64(self.ContributionCounts.Back()-self.ContributionCounts.Front()) / float64(self.ContributionCounts.Len())
	self.Report.Ledger.State.AverageContributionsPerMinute.Store(round(value))
	return
}

// An idle sale is healthy, health only tracks that the process runs
func (self *Monitor) IsOK() bool {
	return true
}

func (self *Monitor) OnGetState(c *gin.Context) {
	// Fill data
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))

	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
