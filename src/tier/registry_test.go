package tier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sealstudios/presale/src/utils/config"
)

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

type RegistryTestSuite struct {
	suite.Suite
	ctx      context.Context
	cancel   context.CancelFunc
	registry *Registry
}

func (s *RegistryTestSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

func (s *RegistryTestSuite) TearDownSuite() {
	s.cancel()
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = NewRegistry(NewMemoryStore())

	err := s.registry.Initialize(s.ctx, "authority", &config.Default().Tier)
	assert.NoError(s.T(), err)
}

func (s *RegistryTestSuite) TestInitializeOnce() {
	err := s.registry.Initialize(s.ctx, "authority", &config.Default().Tier)
	assert.ErrorIs(s.T(), err, ErrAlreadyExists)
}

func (s *RegistryTestSuite) TestLookupTier() {
	cases := []struct {
		count uint64
		tier  Tier
	}{
		{0, None},
		{9, None},
		{10, Bronze},
		{49, Bronze},
		{50, Silver},
		{249, Silver},
		{250, Gold},
		{1000, Gold},
	}
	for _, c := range cases {
		tier, err := s.registry.LookupTier(s.ctx, c.count)
		assert.NoError(s.T(), err)
		assert.Equal(s.T(), c.tier, tier, "count %d", c.count)
	}
}

func (s *RegistryTestSuite) TestUpdateThresholds() {
	err := s.registry.UpdateThresholds(s.ctx, "authority", 5, 20, 100)
	assert.NoError(s.T(), err)

	tier, err := s.registry.LookupTier(s.ctx, 5)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), Bronze, tier)
}

func (s *RegistryTestSuite) TestUpdateThresholdsRequiresAuthority() {
	err := s.registry.UpdateThresholds(s.ctx, "mallory", 5, 20, 100)
	assert.ErrorIs(s.T(), err, ErrUnauthorized)
}

func (s *RegistryTestSuite) TestUpdateThresholdsMustAscend() {
	assert.ErrorIs(s.T(), s.registry.UpdateThresholds(s.ctx, "authority", 0, 20, 100), ErrInvalidThresholds)
	assert.ErrorIs(s.T(), s.registry.UpdateThresholds(s.ctx, "authority", 20, 20, 100), ErrInvalidThresholds)
	assert.ErrorIs(s.T(), s.registry.UpdateThresholds(s.ctx, "authority", 10, 100, 100), ErrInvalidThresholds)
}

func (s *RegistryTestSuite) TestRecordAttestation() {
	// Below the minimum counts, but not as a presale attestation
	presale, err := s.registry.RecordAttestation(s.ctx, 1)
	assert.NoError(s.T(), err)
	assert.False(s.T(), presale)

	presale, err = s.registry.RecordAttestation(s.ctx, 100_000_000)
	assert.NoError(s.T(), err)
	assert.True(s.T(), presale)

	registry, err := s.registry.Get(s.ctx)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), uint64(2), registry.TotalAttestations)
	assert.Equal(s.T(), uint64(1), registry.TotalPresaleAttestations)
}

func (s *RegistryTestSuite) TestVerifyPresaleEligibility() {
	eligible, err := s.registry.VerifyPresaleEligibility(s.ctx, 99_999_999)
	assert.NoError(s.T(), err)
	assert.False(s.T(), eligible)

	eligible, err = s.registry.VerifyPresaleEligibility(s.ctx, 100_000_000)
	assert.NoError(s.T(), err)
	assert.True(s.T(), eligible)
}

func (s *RegistryTestSuite) TestUninitialized() {
	registry := NewRegistry(NewMemoryStore())
	_, err := registry.LookupTier(s.ctx, 10)
	assert.ErrorIs(s.T(), err, ErrNotInitialized)
}

func (s *RegistryTestSuite) TestTierNames() {
	assert.Equal(s.T(), "none", None.String())
	assert.Equal(s.T(), "bronze", Bronze.String())
	assert.Equal(s.T(), "silver", Silver.String())
	assert.Equal(s.T(), "gold", Gold.String())
}
