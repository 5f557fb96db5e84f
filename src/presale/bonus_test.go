package presale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sealstudios/presale/src/utils/config"
)

func TestBonusTestSuite(t *testing.T) {
	suite.Run(t, new(BonusTestSuite))
}

type BonusTestSuite struct {
	suite.Suite
	schedule *BonusSchedule
}

func (s *BonusTestSuite) SetupSuite() {
	var err error
	s.schedule, err = NewBonusSchedule(&config.Default().Sale)
	assert.NoError(s.T(), err)
}

func (s *BonusTestSuite) TestBreakpoints() {
	cases := []struct {
		amount  uint64
		percent uint64
	}{
		{0, 0},
		{TokenScale - 1, 0},
		{TokenScale, 10},
		{10*TokenScale - 1, 10},
		{10 * TokenScale, 15},
		{50 * TokenScale, 20},
		{100 * TokenScale, 25},
		{500 * TokenScale, 30},
		{1000 * TokenScale, 30},
	}
	for _, c := range cases {
		assert.Equal(s.T(), c.percent, s.schedule.Percent(c.amount), "amount %d", c.amount)
	}
}

func (s *BonusTestSuite) TestRejectsOverflowingBreakpoint() {
	saleConfig := config.Default().Sale
	saleConfig.BonusThresholds = []uint64{1, 1 << 60}
	saleConfig.BonusPercents = []uint64{10, 30}

	_, err := NewBonusSchedule(&saleConfig)
	assert.ErrorIs(s.T(), err, ErrOverflow)
}
