package migration

import (
	"context"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/pkg/xcontext"
)

func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if !migrator.HasColumn(&entity.Player{}, "nft_count") {
		return migrator.AddColumn(&entity.Player{}, "nft_count")
	}

	return nil
}
