package domain

import (
	"testing"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/pkg/testutil"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_bossDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()

	cfg := xcontext.Configs(ctx)
	cfg.Game.ActiveBoss = "Hydra"
	ctx = xcontext.WithConfigs(ctx, cfg)

	domain := NewBossDomain([]config.Boss{
		{Name: "Basilisk", Multiplier: 1.2, Lore: "Don't meet its gaze."},
		{Name: "Hydra", Multiplier: 1.5, Lore: "Cut one head, two grow back.",
			ImageURL: "https://example.com/hydra.png"},
	})

	resp, err := domain.Get(ctx, &model.GetBossRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.GetBossResponse{
		Active:     true,
		Name:       "Hydra",
		Multiplier: 1.5,
		Lore:       "Cut one head, two grow back.",
		ImageURL:   "https://example.com/hydra.png",
	}, resp)
}

func Test_bossDomain_Get_NoActiveBoss(t *testing.T) {
	ctx := testutil.MockContext()

	domain := NewBossDomain([]config.Boss{{Name: "Hydra", Multiplier: 1.5}})
	resp, err := domain.Get(ctx, &model.GetBossRequest{})
	require.NoError(t, err)
	require.False(t, resp.Active)
	require.Empty(t, resp.Name)
}
