package model

const TableTreasuryAccount = "treasury_accounts"

// TreasuryAccount is a balance row used by the database-backed transfer
// boundary. One row per identity, tokens and currency tracked separately.
type TreasuryAccount struct {
	Address string `gorm:"primaryKey"`

	TokenBalance    uint64
	CurrencyBalance uint64

	UpdatedAt int64
}

func (TreasuryAccount) TableName() string {
	return TableTreasuryAccount
}
