package domain

import (
	"context"

	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/pkg/errorx"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
)

const maxLeaderboardLimit = 50

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	playerRepo  repository.PlayerRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	playerRepo repository.PlayerRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{playerRepo: playerRepo, redisClient: redisClient}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Offset < 0 || req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid offset or limit")
	}

	limit := req.Limit
	if limit == 0 {
		limit = 10
	}

	if limit > maxLeaderboardLimit {
		return nil, errorx.New(errorx.BadRequest,
			"Limit cannot exceed %d", maxLeaderboardLimit)
	}

	records, err := d.redisClient.ZRevRangeWithScores(
		ctx, common.RedisKeyLeaderboard, req.Offset, limit)
	if err == nil && len(records) > 0 {
		data := make([]model.LeaderboardEntry, 0, len(records))
		for i, z := range records {
			member, ok := z.Member.(string)
			if !ok {
				continue
			}

			data = append(data, model.LeaderboardEntry{
				PlayerID:     member,
				WeeklyTokens: int64(z.Score),
				Rank:         req.Offset + i + 1,
			})
		}

		return &model.GetLeaderboardResponse{Data: data}, nil
	}

	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read leaderboard cache: %v", err)
	}

	players, err := d.playerRepo.TopByWeekly(ctx, req.Offset+limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	if req.Offset < len(players) {
		players = players[req.Offset:]
	} else {
		players = nil
	}

	data := make([]model.LeaderboardEntry, 0, len(players))
	for i, player := range players {
		data = append(data, model.LeaderboardEntry{
			PlayerID:     player.ID,
			WeeklyTokens: player.WeeklyTokens,
			Rank:         req.Offset + i + 1,
		})
	}

	return &model.GetLeaderboardResponse{Data: data}, nil
}
