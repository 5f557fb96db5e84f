package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Sale struct {
	// Bonus schedule breakpoints, expressed in whole currency units, ascending.
	// Each breakpoint grants the matching percent from BonusPercents.
	// Amounts below the first breakpoint get no bonus.
	BonusThresholds []uint64

	// Bonus percent granted at each breakpoint
	BonusPercents []uint64

	// Size of the event buffer between the ledger and the publisher
	EventQueueSize int
}

func setSaleDefaults() {
	viper.SetDefault("Sale.BonusThresholds", []uint64{1, 10, 50, 100, 500})
	viper.SetDefault("Sale.BonusPercents", []uint64{10, 15, 20, 25, 30})
	viper.SetDefault("Sale.EventQueueSize", "100")
}

func (self *Sale) validate() (err error) {
	if len(self.BonusThresholds) != len(self.BonusPercents) {
		return errors.New("bonus thresholds and percents must have the same length")
	}
	for i := 1; i < len(self.BonusThresholds); i++ {
		if self.BonusThresholds[i] <= self.BonusThresholds[i-1] {
			return errors.New("bonus thresholds must be strictly ascending")
		}
	}
	for _, percent := range self.BonusPercents {
		if percent > 100 {
			return errors.New("bonus percent above 100")
		}
	}
	return
}
