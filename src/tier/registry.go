package tier

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/sealstudios/presale/src/utils/config"
	"github.com/sealstudios/presale/src/utils/logger"
	"github.com/sealstudios/presale/src/utils/model"
)

// Registry manages the attestation registry: reward tier thresholds and
// the running attestation counters. A single row backs all of it.
type Registry struct {
	store Store
	log   *logrus.Entry
}

func NewRegistry(store Store) (self *Registry) {
	self = new(Registry)
	self.store = store
	self.log = logger.NewSublogger("tier-registry")
	return
}

// Initialize creates the registry row from the configured thresholds.
// Fails when a registry already exists.
func (self *Registry) Initialize(ctx context.Context, authority string, tierConfig *config.Tier) (err error) {
	err = validateThresholds(tierConfig.BronzeThreshold, tierConfig.SilverThreshold, tierConfig.GoldThreshold)
	if err != nil {
		return
	}

	registry := &model.TierRegistry{
		Authority:           authority,
		BronzeThreshold:     tierConfig.BronzeThreshold,
		SilverThreshold:     tierConfig.SilverThreshold,
		GoldThreshold:       tierConfig.GoldThreshold,
		MinimumContribution: tierConfig.MinimumContribution,
	}

	err = self.store.CreateRegistry(ctx, registry)
	if err != nil {
		return
	}

	self.log.WithField("authority", authority).Info("Tier registry initialized")
	return
}

// UpdateThresholds replaces the tier thresholds. Authority-only.
func (self *Registry) UpdateThresholds(ctx context.Context, authority string, bronze, silver, gold uint64) (err error) {
	err = validateThresholds(bronze, silver, gold)
	if err != nil {
		return
	}

	return self.store.InTransaction(ctx, func(tx Store) (err error) {
		registry, err := tx.LockRegistry(ctx)
		if err != nil {
			return
		}
		if registry.Authority != authority {
			return ErrUnauthorized
		}

		registry.BronzeThreshold = bronze
		registry.SilverThreshold = silver
		registry.GoldThreshold = gold
		return tx.SaveRegistry(ctx, registry)
	})
}

// RecordAttestation counts one contribution toward the attestation totals.
// Contributions at or above the minimum also count as presale attestations.
func (self *Registry) RecordAttestation(ctx context.Context, amount uint64) (presale bool, err error) {
	err = self.store.InTransaction(ctx, func(tx Store) (err error) {
		registry, err := tx.LockRegistry(ctx)
		if err != nil {
			return
		}

		if registry.TotalAttestations == math.MaxUint64 {
			return ErrOverflow
		}
		registry.TotalAttestations += 1

		if amount >= registry.MinimumContribution {
			if registry.TotalPresaleAttestations == math.MaxUint64 {
				return ErrOverflow
			}
			registry.TotalPresaleAttestations += 1
			presale = true
		}
		return tx.SaveRegistry(ctx, registry)
	})
	if err != nil {
		return false, err
	}
	return
}

// VerifyPresaleEligibility reports whether a contribution of the given
// amount qualifies for a presale attestation.
func (self *Registry) VerifyPresaleEligibility(ctx context.Context, amount uint64) (eligible bool, err error) {
	registry, err := self.store.GetRegistry(ctx)
	if err != nil {
		return
	}
	return amount >= registry.MinimumContribution, nil
}

// LookupTier maps a contribution count onto a tier using the stored
// thresholds.
func (self *Registry) LookupTier(ctx context.Context, count uint64) (tier Tier, err error) {
	registry, err := self.store.GetRegistry(ctx)
	if err != nil {
		return
	}
	return Lookup(count, registry.BronzeThreshold, registry.SilverThreshold, registry.GoldThreshold), nil
}

func (self *Registry) Get(ctx context.Context) (*model.TierRegistry, error) {
	return self.store.GetRegistry(ctx)
}

func validateThresholds(bronze, silver, gold uint64) error {
	if bronze == 0 || bronze >= silver || silver >= gold {
		return ErrInvalidThresholds
	}
	return nil
}
