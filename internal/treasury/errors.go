package treasury

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNothingToClaim       = errors.New("nothing to claim")
	ErrAmountExceedsCap     = errors.New("amount exceeds cap")
	ErrTreasuryInsufficient = errors.New("treasury balance insufficient")
	ErrRateLimited          = errors.New("payout rate limit active")
	ErrInvalidAddress       = errors.New("invalid receive address")
	ErrInvalidAmount        = errors.New("invalid payout amount")
	ErrTransferFailed       = errors.New("token transfer failed")
	ErrOracleUnavailable    = errors.New("treasury oracle unavailable")
)

// ClaimLockedError reports how long until the claim window reopens.
type ClaimLockedError struct {
	Remaining time.Duration
}

func (e ClaimLockedError) Error() string {
	return fmt.Sprintf("claim locked for another %s", e.Remaining)
}
