package model

import (
	"encoding/json"

	"github.com/jackc/pgtype"
)

const TableContribution = "contributions"

// Contribution is the append-only record of one accepted contribution,
// one row per successful accept. Consumed by external observers.
type Contribution struct {
	ID          string `gorm:"primaryKey" json:"id"`
	SaleID      string `json:"sale_id"`
	Contributor string `json:"contributor"`

	// Base currency units paid in
	Amount uint64 `json:"amount"`

	// Tokens granted, bonus included
	Tokens uint64 `json:"tokens"`

	// Bonus percent applied to the base conversion
	BonusPercent uint64 `json:"bonus_percent"`

	// Unix seconds at acceptance
	Timestamp int64 `json:"timestamp"`

	Metadata pgtype.JSONB `gorm:"type:jsonb" json:"metadata,omitempty"`
}

func (Contribution) TableName() string {
	return TableContribution
}

// MarshalBinary makes Contribution publishable through the Redis publisher
func (self Contribution) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}
