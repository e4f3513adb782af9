package main

import (
	"context"
	"net/http"

	"github.com/snektrials/backend/config"
	"github.com/snektrials/backend/internal/common"
	"github.com/snektrials/backend/internal/domain"
	"github.com/snektrials/backend/internal/model"
	"github.com/snektrials/backend/internal/repository"
	"github.com/snektrials/backend/internal/treasury"
	"github.com/snektrials/backend/pkg/api/blockfrost"
	"github.com/snektrials/backend/pkg/api/discord"
	"github.com/snektrials/backend/pkg/blockchain/cardano"
	"github.com/snektrials/backend/pkg/jwt"
	"github.com/snektrials/backend/pkg/logger"
	"github.com/snektrials/backend/pkg/router"
	"github.com/snektrials/backend/pkg/xcontext"
	"github.com/snektrials/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient        xredis.Client
	blockfrostEndpoint blockfrost.IEndpoint
	discordEndpoint    discord.IEndpoint
	cardanoClient      *cardano.Client
	tokenEngine        *jwt.Engine[model.AccessToken]

	playerRepo      repository.PlayerRepository
	txRepo          repository.RewardTransactionRepository
	collectionRepo  repository.NFTCollectionRepository
	gameSettingRepo repository.GameSettingRepository

	settler *treasury.Settler
	bosses  []config.Boss

	claimDomain      domain.ClaimDomain
	bossDomain       domain.BossDomain
	trialDomain      domain.TrialDomain
	walletDomain     domain.WalletDomain
	profileDomain    domain.ProfileDomain
	statisticDomain  domain.StatisticDomain
	collectionDomain domain.CollectionDomain
	settingDomain    domain.GameSettingDomain

	router *router.Router

	server        *http.Server
	metricsServer *http.Server
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.INFO)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadEndpoints() {
	s.blockfrostEndpoint = blockfrost.New(s.configs.Cardano)
	s.discordEndpoint = discord.New(s.configs.Discord)

	var err error
	s.cardanoClient, err = cardano.NewClient(s.configs.Cardano, s.configs.Treasury)
	if err != nil {
		panic(err)
	}

	s.tokenEngine = jwt.NewEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.AccessToken.Expiration)
}

func (s *srv) loadRepos() {
	s.playerRepo = repository.NewPlayerRepository()
	s.txRepo = repository.NewRewardTransactionRepository()
	s.collectionRepo = repository.NewNFTCollectionRepository()
	s.gameSettingRepo = repository.NewGameSettingRepository()
}

func (s *srv) loadTreasury() {
	var err error
	s.bosses, err = config.LoadBosses(s.configs.Game.BossFile)
	if err != nil {
		panic(err)
	}

	s.settler = treasury.NewSettler(
		s.playerRepo,
		s.txRepo,
		treasury.NewBlockfrostOracle(s.blockfrostEndpoint),
		treasury.NewLimiter(s.configs.Treasury.PayoutRateLimit),
		treasury.NewCardanoExecutor(s.cardanoClient),
		treasury.NewDiscordNotifier(s.discordEndpoint),
	)
}

func (s *srv) loadDomains() {
	globalRoleVerifier := common.NewGlobalRoleVerifier(s.playerRepo)

	s.claimDomain = domain.NewClaimDomain(
		s.playerRepo, s.settler, globalRoleVerifier, s.redisClient, s.bosses)
	s.bossDomain = domain.NewBossDomain(s.bosses)
	s.trialDomain = domain.NewTrialDomain(
		s.playerRepo, s.collectionRepo, s.gameSettingRepo,
		s.blockfrostEndpoint, s.redisClient)
	s.walletDomain = domain.NewWalletDomain(
		s.playerRepo, s.collectionRepo, s.blockfrostEndpoint, s.redisClient)
	s.profileDomain = domain.NewProfileDomain(
		s.playerRepo, s.txRepo, s.collectionRepo, s.gameSettingRepo,
		s.blockfrostEndpoint, s.redisClient)
	s.statisticDomain = domain.NewStatisticDomain(s.playerRepo, s.redisClient)
	s.collectionDomain = domain.NewCollectionDomain(s.collectionRepo, globalRoleVerifier)
	s.settingDomain = domain.NewGameSettingDomain(
		s.gameSettingRepo, s.playerRepo, globalRoleVerifier, s.redisClient)
}
