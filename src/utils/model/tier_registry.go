package model

const TableTierRegistry = "tier_registry"

// TierRegistry is the single row holding reward tier thresholds and the
// presale attestation counters. Id always equals one.
type TierRegistry struct {
	Id int `gorm:"primaryKey"`

	Authority string

	// Strictly ascending tier thresholds
	BronzeThreshold uint64
	SilverThreshold uint64
	GoldThreshold   uint64

	// Minimum contribution qualifying for a presale attestation
	MinimumContribution uint64

	TotalAttestations        uint64
	TotalPresaleAttestations uint64
}

func (TierRegistry) TableName() string {
	return TableTierRegistry
}
