package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address. Serves the sale API, monitoring and metrics.
	RESTListenAddress string

	// Max time for handling a single request
	ServerRequestTimeout time.Duration

	// Contributions accepted per second, globally. 0 disables the limiter.
	ContributionRateLimit int

	// How long a cached sale snapshot stays fresh in read endpoints
	SaleCacheExpiration time.Duration

	// How often expired snapshots are evicted
	SaleCacheCleanupInterval time.Duration

	// How many times a contribution is retried upon serialization failure
	CommitRetryMaxElapsedTime time.Duration
	CommitRetryMaxInterval    time.Duration
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.RESTListenAddress", "0.0.0.0:4000")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.ContributionRateLimit", "100")
	viper.SetDefault("Gateway.SaleCacheExpiration", "2s")
	viper.SetDefault("Gateway.SaleCacheCleanupInterval", "1m")
	viper.SetDefault("Gateway.CommitRetryMaxElapsedTime", "5s")
	viper.SetDefault("Gateway.CommitRetryMaxInterval", "500ms")
}
