package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/ratelimit"

	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/tier"
	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/monitoring"
	"github.com/sealstudios/presale/src/utils/task"
)

// Rest API server, serves the sale API and monitor counters
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor  monitoring.Monitor
	ledger   *presale.Ledger
	registry *tier.Registry

	// Read side cache for sale snapshots
	saleCache *cache.Cache

	// Paces contribution submissions, nil when disabled
	limiter ratelimit.Limiter
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	self.Router = gin.New()

	self.httpServer = &http.Server{
		Addr:              self.Config.Gateway.RESTListenAddress,
		Handler:           self.Router,
		ReadHeaderTimeout: self.Config.Gateway.ServerRequestTimeout,
	}

	self.saleCache = cache.New(
		config.Gateway.SaleCacheExpiration,
		config.Gateway.SaleCacheCleanupInterval)

	if config.Gateway.ContributionRateLimit > 0 {
		self.limiter = ratelimit.New(config.Gateway.ContributionRateLimit)
	}

	return
}

func (self *Server) WithMonitor(monitor monitoring.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) WithLedger(ledger *presale.Ledger) *Server {
	self.ledger = ledger
	return self
}

func (self *Server) WithRegistry(registry *tier.Registry) *Server {
	self.registry = registry
	return self
}

func (self *Server) run() (err error) {
	if self.Config.IsDevelopment {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router.Use(self.countRequests)

	v1 := self.Router.Group("v1")
	{
		v1.POST("sales", self.onCreateSale)
		v1.GET("sales/:id", self.onGetSale)
		v1.POST("sales/:id/contributions", self.onContribute)
		v1.GET("sales/:id/contributions", self.onListContributions)
		v1.POST("sales/:id/finalize", self.onFinalize)
		v1.PUT("sales/:id/whitelist", self.onUpdateWhitelist)
		v1.GET("sales/:id/participants/:address", self.onGetParticipant)

		v1.GET("tier/:count", self.onLookupTier)
		v1.PUT("tier/thresholds", self.onUpdateThresholds)

		v1.GET("state", self.monitor.OnGetState)
		v1.GET("health", self.monitor.OnGetHealth)
		v1.GET("metrics", gin.WrapH(promhttp.Handler()))
	}

	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}

func (self *Server) countRequests(c *gin.Context) {
	self.monitor.GetReport().Gateway.State.RequestsServed.Inc()
	c.Next()
}
