package config

import (
	"github.com/spf13/viper"
)

type Tier struct {
	// Address allowed to change thresholds. Empty leaves the registry
	// uninitialized until it is created by other means.
	Authority string

	// Initial reward tier thresholds, strictly ascending
	BronzeThreshold uint64
	SilverThreshold uint64
	GoldThreshold   uint64

	// Minimum contribution qualifying for a presale attestation, in base units
	MinimumContribution uint64
}

func setTierDefaults() {
	viper.SetDefault("Tier.BronzeThreshold", "10")
	viper.SetDefault("Tier.SilverThreshold", "50")
	viper.SetDefault("Tier.GoldThreshold", "250")
	viper.SetDefault("Tier.MinimumContribution", "100000000")
}
