package presale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestConvertTestSuite(t *testing.T) {
	suite.Run(t, new(ConvertTestSuite))
}

type ConvertTestSuite struct {
	suite.Suite
}

func (s *ConvertTestSuite) TestConversion() {
	// 2 currency units at price 1, 10% bonus
	tokens, err := ConvertTokens(2*TokenScale, TokenScale, 10)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2_200_000_000), tokens)
}

func (s *ConvertTestSuite) TestConversionAtDoublePrice() {
	// 2 currency units at price 2 buy a single token
	tokens, err := ConvertTokens(2*TokenScale, 2*TokenScale, 0)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(TokenScale), tokens)
}

func (s *ConvertTestSuite) TestTruncation() {
	// 1 base unit at price 3 is worth 0 tokens, never rounded up
	tokens, err := ConvertTokens(1, 3*TokenScale, 0)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(0), tokens)
}

func (s *ConvertTestSuite) TestZeroPrice() {
	_, err := ConvertTokens(TokenScale, 0, 0)
	assert.ErrorIs(s.T(), err, ErrInvalidPrice)
}

func (s *ConvertTestSuite) TestOverflow() {
	_, err := ConvertTokens(math.MaxUint64, 1, 0)
	assert.ErrorIs(s.T(), err, ErrOverflow)
}
