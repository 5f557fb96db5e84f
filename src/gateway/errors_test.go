package gateway

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/tier"
)

func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

type ErrorsTestSuite struct {
	suite.Suite
}

func (s *ErrorsTestSuite) TestStatusMapping() {
	cases := []struct {
		err    error
		status int
	}{
		{presale.ErrSaleNotFound, http.StatusNotFound},
		{presale.ErrSaleExists, http.StatusConflict},
		{presale.ErrUnauthorized, http.StatusForbidden},
		{presale.ErrInvalidPrice, http.StatusBadRequest},
		{presale.ErrAmountTooLow, http.StatusUnprocessableEntity},
		{presale.ErrCapExceeded, http.StatusUnprocessableEntity},
		{presale.ErrNotWhitelisted, http.StatusUnprocessableEntity},
		{tier.ErrNotInitialized, http.StatusNotFound},
		{tier.ErrInvalidThresholds, http.StatusBadRequest},
		{tier.ErrUnauthorized, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(s.T(), c.status, mapStatus(c.err), "error %v", c.err)
	}
}

func (s *ErrorsTestSuite) TestRetryable() {
	assert.False(s.T(), isRetryable(nil))
	assert.False(s.T(), isRetryable(presale.ErrCapExceeded))
	assert.True(s.T(), isRetryable(errors.New("ERROR: could not serialize access (SQLSTATE 40001)")))
	assert.True(s.T(), isRetryable(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
}
