package presale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/model"
)

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

type EngineTestSuite struct {
	suite.Suite
	schedule *BonusSchedule
	now      time.Time
}

func (s *EngineTestSuite) SetupSuite() {
	var err error
	s.schedule, err = NewBonusSchedule(&config.Default().Sale)
	assert.NoError(s.T(), err)
	s.now = time.Unix(1500, 0)
}

func (s *EngineTestSuite) sale() *model.Sale {
	return &model.Sale{
		ID:            "sale",
		Authority:     "authority",
		Treasury:      "treasury",
		TokenPool:     "pool",
		StartTime:     1000,
		EndTime:       2000,
		IsActive:      true,
		MinPurchase:   1 * TokenScale,
		MaxPurchase:   100 * TokenScale,
		TotalRaiseCap: 1000 * TokenScale,
		PresaleSupply: 2000 * TokenScale,
		PricePerToken: 1 * TokenScale,
	}
}

func (s *EngineTestSuite) evaluate(sale *model.Sale, participant *model.Participant, amount uint64) (*evaluation, error) {
	return evaluate(sale, participant, "alice", amount, nil, s.now, s.schedule, nil)
}

func (s *EngineTestSuite) TestAccepts() {
	result, err := s.evaluate(s.sale(), nil, 2*TokenScale)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2_200_000_000), result.Tokens)
	assert.Equal(s.T(), uint64(10), result.BonusPercent)
	assert.Equal(s.T(), uint64(2*TokenScale), result.NewTotalRaised)
	assert.True(s.T(), result.FirstContribution)
}

func (s *EngineTestSuite) TestRejectsInactive() {
	sale := s.sale()
	sale.IsActive = false
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrSaleInactive)
}

func (s *EngineTestSuite) TestRejectsBeforeStart() {
	sale := s.sale()
	sale.StartTime = 1600
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrSaleNotStarted)
}

func (s *EngineTestSuite) TestRejectsAfterEnd() {
	sale := s.sale()
	sale.EndTime = 1400
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrSaleEnded)
}

func (s *EngineTestSuite) TestWindowIsInclusive() {
	sale := s.sale()
	sale.StartTime = 1500
	sale.EndTime = 1500
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.NoError(s.T(), err)
}

func (s *EngineTestSuite) TestRejectsBelowMinimum() {
	_, err := s.evaluate(s.sale(), nil, 1*TokenScale-1)
	assert.ErrorIs(s.T(), err, ErrAmountTooLow)
}

func (s *EngineTestSuite) TestRejectsAboveMaximum() {
	_, err := s.evaluate(s.sale(), nil, 100*TokenScale+1)
	assert.ErrorIs(s.T(), err, ErrAmountTooHigh)
}

func (s *EngineTestSuite) TestRejectsWhenCapExceededByOne() {
	sale := s.sale()
	sale.TotalRaised = sale.TotalRaiseCap - 2*TokenScale + 1
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrCapExceeded)
}

func (s *EngineTestSuite) TestAcceptsWhenCapReachedExactly() {
	sale := s.sale()
	sale.TotalRaised = sale.TotalRaiseCap - 2*TokenScale
	result, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), sale.TotalRaiseCap, result.NewTotalRaised)
}

func (s *EngineTestSuite) TestRejectsWhenSupplyExhausted() {
	sale := s.sale()
	// 2.2 tokens granted, only 2 left in the supply
	sale.TokensSold = sale.PresaleSupply - 2*TokenScale
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrSupplyExhausted)
}

func (s *EngineTestSuite) TestRejectsContributorOverCap() {
	participant := &model.Participant{
		SaleID:           "sale",
		Address:          "alice",
		TotalContributed: 99 * TokenScale,
	}
	_, err := s.evaluate(s.sale(), participant, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrContributorCapExceeded)
}

func (s *EngineTestSuite) TestSecondContributionIsNotFirst() {
	participant := &model.Participant{
		SaleID:           "sale",
		Address:          "alice",
		TotalContributed: 2 * TokenScale,
	}
	result, err := s.evaluate(s.sale(), participant, 2*TokenScale)
	assert.NoError(s.T(), err)
	assert.False(s.T(), result.FirstContribution)
	assert.Equal(s.T(), uint64(4*TokenScale), result.NewParticipantTotal)
}

func (s *EngineTestSuite) TestWhitelistWithoutVerifier() {
	sale := s.sale()
	sale.WhitelistEnabled = true
	sale.WhitelistRoot = []byte{1}
	_, err := s.evaluate(sale, nil, 2*TokenScale)
	assert.ErrorIs(s.T(), err, ErrWhitelistUnverifiable)
}

func (s *EngineTestSuite) TestValidateParams() {
	now := time.Unix(1000, 0)

	sale := s.sale()
	assert.NoError(s.T(), validateParams(sale, now))

	sale = s.sale()
	sale.EndTime = sale.StartTime
	assert.ErrorIs(s.T(), validateParams(sale, now), ErrInvalidTimeRange)

	sale = s.sale()
	assert.ErrorIs(s.T(), validateParams(sale, time.Unix(1001, 0)), ErrStartTimeInPast)

	sale = s.sale()
	sale.MinPurchase = 0
	assert.ErrorIs(s.T(), validateParams(sale, now), ErrInvalidMinPurchase)

	sale = s.sale()
	sale.MaxPurchase = sale.MinPurchase - 1
	assert.ErrorIs(s.T(), validateParams(sale, now), ErrInvalidMaxPurchase)

	sale = s.sale()
	sale.TotalRaiseCap = 0
	assert.ErrorIs(s.T(), validateParams(sale, now), ErrInvalidRaiseCap)

	sale = s.sale()
	sale.PresaleSupply = 0
	assert.ErrorIs(s.T(), validateParams(sale, now), ErrInvalidSupply)

	sale = s.sale()
	sale.PricePerToken = 0
	assert.ErrorIs(s.T(), validateParams(sale, now), ErrInvalidPrice)
}
