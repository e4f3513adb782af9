package entity

import (
	"database/sql"
)

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)

var GlobalAdminRoles = []string{SuperAdminRole, AdminRole}

// Player is the durable account. The ID is the external (Discord)
// user id. WeeklyTokens is mutated by exactly two paths: trial accrual
// and the settlement commit; TotalTokens only ever grows.
type Player struct {
	Base

	WalletAddress sql.NullString `gorm:"index"`
	Role          string         `gorm:"default:USER"`

	NFTCount int

	TotalTokens  int64
	WeeklyTokens int64

	FirstPlayAt        sql.NullTime
	LastTrialAt        sql.NullTime
	WeeklyResetAt      sql.NullTime
	LastWalletChangeAt sql.NullTime
}
