package model

const TableSale = "sales"

// Sale is the singleton record of one presale: immutable parameters set at
// initialization and running totals mutated by every accepted contribution.
type Sale struct {
	ID string `gorm:"primaryKey" json:"id"`

	// Identities
	Authority string `json:"authority"`
	Treasury  string `json:"treasury"`
	TokenMint string `json:"token_mint"`
	TokenPool string `json:"token_pool"`

	// Time window, unix seconds, inclusive on both ends
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`

	// One-way flag, true until the sale is finalized
	IsActive bool `json:"is_active"`

	// Per-transaction purchase bounds, base currency units
	MinPurchase uint64 `json:"min_purchase"`
	MaxPurchase uint64 `json:"max_purchase"`

	// Global caps and running totals
	TotalRaiseCap uint64 `json:"total_raise_cap"`
	TotalRaised   uint64 `json:"total_raised"`
	PresaleSupply uint64 `json:"presale_supply"`
	TokensSold    uint64 `json:"tokens_sold"`

	// Base currency units per whole token
	PricePerToken uint64 `json:"price_per_token"`

	// Whitelist commitment, enabled iff a root is present
	WhitelistEnabled bool   `json:"whitelist_enabled"`
	WhitelistRoot    []byte `json:"whitelist_root,omitempty"`

	// Count of distinct participants
	TotalContributors uint64 `json:"total_contributors"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (Sale) TableName() string {
	return TableSale
}
