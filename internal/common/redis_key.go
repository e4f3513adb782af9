package common

const (
	RedisKeyLeaderboard = "leaderboard:weekly"
)

func RedisKeyNFTCount(playerID string) string {
	return "nftcount:" + playerID
}
