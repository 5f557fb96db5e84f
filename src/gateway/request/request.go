package request

import "encoding/json"

// CreateSale carries the immutable sale parameters.
type CreateSale struct {
	ID        string `json:"id" binding:"required"`
	Authority string `json:"authority" binding:"required"`
	Treasury  string `json:"treasury" binding:"required"`
	TokenMint string `json:"token_mint" binding:"required"`
	TokenPool string `json:"token_pool" binding:"required"`

	StartTime int64 `json:"start_time" binding:"required"`
	EndTime   int64 `json:"end_time" binding:"required"`

	MinPurchase   uint64 `json:"min_purchase" binding:"required"`
	MaxPurchase   uint64 `json:"max_purchase" binding:"required"`
	TotalRaiseCap uint64 `json:"total_raise_cap" binding:"required"`
	PresaleSupply uint64 `json:"presale_supply" binding:"required"`
	PricePerToken uint64 `json:"price_per_token" binding:"required"`

	// Optional, whitelist enforcement is on iff a root is given
	WhitelistRoot []byte `json:"whitelist_root,omitempty"`
}

type Contribute struct {
	Contributor string `json:"contributor" binding:"required"`
	Amount      uint64 `json:"amount" binding:"required"`

	// Merkle proof, base64 encoded nodes
	Proof [][]byte `json:"proof,omitempty"`

	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type Finalize struct {
	Authority string `json:"authority" binding:"required"`
}

type UpdateWhitelist struct {
	Authority string `json:"authority" binding:"required"`

	// Empty root disables the whitelist
	Root []byte `json:"root,omitempty"`
}

type UpdateThresholds struct {
	Authority string `json:"authority" binding:"required"`

	BronzeThreshold uint64 `json:"bronze_threshold" binding:"required"`
	SilverThreshold uint64 `json:"silver_threshold" binding:"required"`
	GoldThreshold   uint64 `json:"gold_threshold" binding:"required"`
}
