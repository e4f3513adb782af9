package entity

// NFTCollection is an admin-registered policy whose assets count
// toward a player's win-chance weighting.
type NFTCollection struct {
	Base

	PolicyID string `gorm:"uniqueIndex"`
	Name     string
}
