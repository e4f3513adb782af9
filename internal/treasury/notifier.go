package treasury

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/pkg/api/discord"
	"github.com/snektrials/backend/pkg/xcontext"
)

// Notifier raises an out-of-band alarm when the treasury cannot cover
// a payout. Alerts are throttled so a storm of failed claims sends the
// operator one message, not hundreds. Delivery failures are logged and
// swallowed; alerting never fails a settlement.
type Notifier interface {
	AlertInsufficient(ctx context.Context, balance *Balance, required int64)
}

type discordNotifier struct {
	endpoint discord.IEndpoint

	// Clock is swappable in tests. Defaults to time.Now.
	Clock func() time.Time

	mutex       sync.Mutex
	lastAlertAt time.Time
}

func NewDiscordNotifier(endpoint discord.IEndpoint) *discordNotifier {
	return &discordNotifier{
		endpoint: endpoint,
		Clock:    time.Now,
	}
}

func (n *discordNotifier) AlertInsufficient(ctx context.Context, balance *Balance, required int64) {
	cfg := xcontext.Configs(ctx)
	if !n.shouldAlert(cfg.Treasury.AlertCooldown) {
		return
	}

	content := fmt.Sprintf(
		"⚠️ Treasury wallet is running low!\n"+
			"Balance: %d lovelace, %d %s\n"+
			"Required for next payout: %d lovelace\n"+
			"Please top up %s",
		balance.Native, balance.Tokens, cfg.Treasury.TokenName,
		required,
		cfg.Treasury.Address,
	)

	if err := n.endpoint.SendDirectMessage(ctx, cfg.Discord.OperatorID, content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send treasury alert: %v", err)
		return
	}

	common.PromCounters[common.TreasuryAlertTotal].WithLabelValues().Inc()
}

func (n *discordNotifier) shouldAlert(cooldown time.Duration) bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	now := n.Clock()
	if !n.lastAlertAt.IsZero() && now.Sub(n.lastAlertAt) < cooldown {
		return false
	}

	n.lastAlertAt = now
	return true
}
