package entity

// RewardTransaction is the append-only audit record of one confirmed
// payout. TxHash is unique; inserting a duplicate hash is a no-op.
type RewardTransaction struct {
	Base

	TxHash   string `gorm:"uniqueIndex"`
	PlayerID string `gorm:"index"`
	Player   Player `gorm:"foreignKey:PlayerID"`

	// Amount is the human-readable token amount actually paid, after
	// any event multiplier was applied.
	Amount int64
}
