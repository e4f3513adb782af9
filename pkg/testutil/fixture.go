package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/snektrials/backend/internal/entity"
	"github.com/snektrials/backend/internal/repository"
)

var FixtureStartTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Player1 has a linked wallet and an unclaimed weekly balance.
var Player1 = &entity.Player{
	Base:          entity.Base{ID: "player1"},
	WalletAddress: sql.NullString{Valid: true, String: "addr1player1wallet"},
	Role:          entity.UserRole,
	NFTCount:      2,
	TotalTokens:   500,
	WeeklyTokens:  100,
	FirstPlayAt:   sql.NullTime{Valid: true, Time: FixtureStartTime.Add(-30 * 24 * time.Hour)},
	LastTrialAt:   sql.NullTime{Valid: true, Time: FixtureStartTime.Add(-48 * time.Hour)},
}

// Player2 has never linked a wallet or claimed.
var Player2 = &entity.Player{
	Base:         entity.Base{ID: "player2"},
	Role:         entity.UserRole,
	TotalTokens:  40,
	WeeklyTokens: 40,
}

// Admin may run privileged operations.
var Admin = &entity.Player{
	Base:          entity.Base{ID: "admin"},
	WalletAddress: sql.NullString{Valid: true, String: "addr1adminwallet"},
	Role:          entity.AdminRole,
	WeeklyTokens:  10,
}

var Collection1 = &entity.NFTCollection{
	Base:     entity.Base{ID: "collection1"},
	PolicyID: "f0ff48bbb7bbe9d59a40f1ce90e9e9d0ff5002ec48f232b49ca0fb9a",
	Name:     "Snek OGs",
}

func CreateFixtureContext(ctx context.Context) {
	InsertPlayers(ctx)
	InsertCollections(ctx)
}

func InsertPlayers(ctx context.Context) {
	playerRepo := repository.NewPlayerRepository()
	for _, player := range []*entity.Player{Player1, Player2, Admin} {
		clone := *player
		if err := playerRepo.Create(ctx, &clone); err != nil {
			panic(err)
		}
	}
}

func InsertCollections(ctx context.Context) {
	collectionRepo := repository.NewNFTCollectionRepository()
	clone := *Collection1
	if err := collectionRepo.Create(ctx, &clone); err != nil {
		panic(err)
	}
}
