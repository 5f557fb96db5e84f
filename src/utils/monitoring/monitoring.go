package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sealstudios/presale/src/utils/monitoring/report"
)

// Monitor aggregates runtime counters and exposes them over HTTP.
type Monitor interface {
	GetReport() *report.Report
	GetPrometheusCollector() prometheus.Collector
	IsOK() bool
	Clear()

	OnGetState(c *gin.Context)
	OnGetHealth(c *gin.Context)
}
