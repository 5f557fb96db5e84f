package response

import (
	"github.com/sealstudios/presale/src/utils/model"
)

type Error struct {
	Error string `json:"error"`
}

// Participant combines stored totals with the derived reward tier.
type Participant struct {
	SaleID  string `json:"sale_id"`
	Address string `json:"address"`

	TotalContributed    uint64 `json:"total_contributed"`
	TotalTokensReceived uint64 `json:"total_tokens_received"`
	ContributionCount   int    `json:"contribution_count"`
	Tier                string `json:"tier"`
}

type Contributions struct {
	Contributions []*model.Contribution `json:"contributions"`
}

type TierLookup struct {
	Count uint64 `json:"count"`
	Tier  string `json:"tier"`
}
