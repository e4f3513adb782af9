package migration

import (
	"context"

	"github.com/snektrials/backend/internal/entity"
)

// migrate0000 creates the database with the latest version.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
