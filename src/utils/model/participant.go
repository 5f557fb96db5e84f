package model

const TableParticipant = "participants"

// Participant holds per-contributor running totals for one sale.
// Created lazily on the first accepted contribution, never deleted.
type Participant struct {
	SaleID  string `gorm:"primaryKey" json:"sale_id"`
	Address string `gorm:"primaryKey" json:"address"`

	TotalContributed    uint64 `json:"total_contributed"`
	TotalTokensReceived uint64 `json:"total_tokens_received"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (Participant) TableName() string {
	return TableParticipant
}
