package presale

import (
	"github.com/sealstudios/presale/src/utils/config"
)

type bonusLevel struct {
	// Breakpoint in base currency units
	threshold uint64

	percent uint64
}

// BonusSchedule maps a contribution size to a percentage bonus.
// Breakpoints come from configuration in whole currency units and are
// scaled to base units once, at construction, so that matching a
// contribution is a pure integer comparison.
type BonusSchedule struct {
	// Descending by threshold, first match wins
	levels []bonusLevel
}

func NewBonusSchedule(saleConfig *config.Sale) (self *BonusSchedule, err error) {
	self = new(BonusSchedule)

	self.levels = make([]bonusLevel, 0, len(saleConfig.BonusThresholds))
	for i, threshold := range saleConfig.BonusThresholds {
		var scaled uint64
		scaled, err = checkedMul(threshold, TokenScale)
		if err != nil {
			return nil, err
		}
		self.levels = append(self.levels, bonusLevel{threshold: scaled, percent: saleConfig.BonusPercents[i]})
	}

	// Config keeps breakpoints ascending, matching wants them descending
	for i, j := 0, len(self.levels)-1; i < j; i, j = i+1, j-1 {
		self.levels[i], self.levels[j] = self.levels[j], self.levels[i]
	}

	return
}

// Percent returns the bonus percentage for a contribution of the given
// size, 0 when the amount is below every breakpoint.
func (self *BonusSchedule) Percent(amount uint64) uint64 {
	for _, level := range self.levels {
		if amount >= level.threshold {
			return level.percent
		}
	}
	return 0
}
