package main

import (
	"net/http"

	"github.com/snektrials/backend/internal/middleware"
	"github.com/snektrials/backend/pkg/prometheus"
	"github.com/snektrials/backend/pkg/router"
	"github.com/snektrials/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadEndpoints()
	s.loadRepos()
	s.loadTreasury()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	s.metricsServer = &http.Server{
		Addr:    s.configs.MetricsServer.Address(),
		Handler: prometheus.NewHandler(),
	}

	group, _ := errgroup.WithContext(s.ctx)
	group.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.server.Addr)
		return s.server.ListenAndServe()
	})
	group.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Starting metrics server on %s", s.metricsServer.Addr)
		return s.metricsServer.ListenAndServe()
	})

	if err := group.Wait(); err != nil {
		xcontext.Logger(s.ctx).Errorf("Server stopped: %v", err)
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.After(middleware.Logger())
	s.router.After(middleware.Prometheus())

	authVerifier := middleware.NewAuthVerifier(s.tokenEngine)
	s.router.Before(authVerifier.Middleware())

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.POST(authRouter, "/claim", s.claimDomain.Claim)
		router.POST(authRouter, "/playTrial", s.trialDomain.Play)
		router.GET(authRouter, "/getTrialStatus", s.trialDomain.GetStatus)
		router.POST(authRouter, "/linkWallet", s.walletDomain.LinkWallet)
		router.GET(authRouter, "/getMyProfile", s.profileDomain.GetMyProfile)
		router.GET(authRouter, "/getPayoutHistory", s.profileDomain.GetPayoutHistory)
	}

	// These following APIs are reserved for administrators.
	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.playerRepo).Middleware())
	{
		router.POST(adminRouter, "/forceClaim", s.claimDomain.ForceClaim)
		router.POST(adminRouter, "/createCollection", s.collectionDomain.Create)
		router.POST(adminRouter, "/deleteCollection", s.collectionDomain.Delete)
		router.POST(adminRouter, "/setGameSetting", s.settingDomain.Set)
		router.GET(adminRouter, "/getGameSettings", s.settingDomain.GetAll)
		router.POST(adminRouter, "/resetPlayer", s.settingDomain.ResetPlayer)
	}

	// Public API.
	router.GET(s.router, "/getBoss", s.bossDomain.Get)
	router.GET(s.router, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	router.GET(s.router, "/getCollections", s.collectionDomain.GetAll)
}
