package domain

import (
	"context"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/pkg/xcontext"
)

type BossDomain interface {
	Get(context.Context, *model.GetBossRequest) (*model.GetBossResponse, error)
}

type bossDomain struct {
	bosses []config.Boss
}

func NewBossDomain(bosses []config.Boss) *bossDomain {
	return &bossDomain{bosses: bosses}
}

func (d *bossDomain) Get(
	ctx context.Context, req *model.GetBossRequest,
) (*model.GetBossResponse, error) {
	boss := config.FindBoss(d.bosses, xcontext.Configs(ctx).Game.ActiveBoss)
	if boss == nil {
		return &model.GetBossResponse{Active: false}, nil
	}

	return &model.GetBossResponse{
		Active:     true,
		Name:       boss.Name,
		Multiplier: boss.Multiplier,
		Lore:       boss.Lore,
		ImageURL:   boss.ImageURL,
	}, nil
}
